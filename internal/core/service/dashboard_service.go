package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
)

const (
	pathAdminProfile      = "/dashboard/admin/createProfile"
	pathContractorProfile = "/dashboard/contractor/createProfile"
)

// DashboardService submits profile forms through the authenticated client.
type DashboardService struct {
	client   ports.Requester
	baseURL  string
	validate *validator.Validate
	log      zerolog.Logger
}

func NewDashboardService(client ports.Requester, baseURL string, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		validate: validator.New(),
		log:      log,
	}
}

func (s *DashboardService) CreateAdminProfile(ctx context.Context, p domain.AdminProfile) error {
	return s.submit(ctx, "admin", pathAdminProfile, p)
}

func (s *DashboardService) CreateContractorProfile(ctx context.Context, p domain.ContractorProfile) error {
	return s.submit(ctx, "contractor", pathContractorProfile, p)
}

func (s *DashboardService) submit(ctx context.Context, kind, path string, profile any) error {
	if err := s.validate.Struct(profile); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}
	if err := s.client.DoJSON(ctx, http.MethodPost, s.baseURL+path, profile, nil); err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("create profile failed")
		return err
	}
	s.log.Info().Str("kind", kind).Msg("profile created")
	return nil
}
