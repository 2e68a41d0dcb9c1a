package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
	"github.com/tenderhub/portal-client/internal/metrics"
)

const maxPageSize = 100

// CatalogService backs the sandbox proposal list endpoint.
type CatalogService struct {
	repo   ports.ProposalRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewCatalogService(repo ports.ProposalRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger, now: time.Now}
}

// ListProposals returns the page after filter.AfterID. Limits outside 1..100
// are clamped and period bounds widen to whole days.
func (s *CatalogService) ListProposals(ctx context.Context, filter domain.ProposalFilter) (*ports.ProposalList, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = domain.DefaultPageSize
	case filter.Limit > maxPageSize:
		filter.Limit = maxPageSize
	}
	filter.Period = wholeDays(filter.Period)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("after_id", filter.AfterID).Msg("failed to list proposals")
		return nil, err
	}

	out := &ports.ProposalList{Items: items}
	if len(items) > filter.Limit {
		out.Items = items[:filter.Limit]
		out.HasMore = true
	}
	if n := len(out.Items); n > 0 {
		out.AfterID = out.Items[n-1].ID
	}

	metrics.ProposalsServedTotal.Add(float64(len(out.Items)))
	s.logger.Debug().
		Int("count", len(out.Items)).
		Bool("has_more", out.HasMore).
		Str("after_id", out.AfterID).
		Msg("proposals listed")
	return out, nil
}

// CreateProposal stores a catalog record. Attachments are not handled.
func (s *CatalogService) CreateProposal(ctx context.Context, p domain.Proposal) (*domain.Proposal, error) {
	if p.ProposalName == "" || p.ContractorName == "" || p.FullProposalPrice < 0 {
		return nil, fmt.Errorf("%w: name, contractor and a non-negative price are required", domain.ErrInvalidProposal)
	}
	p.ID = ""
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create proposal")
		return nil, err
	}

	s.logger.Info().Str("proposal_id", p.ID).Str("contractor", p.ContractorName).Msg("proposal created")
	return &p, nil
}

// wholeDays moves From to the start of its day and To to the last instant of
// its day, both in the bound's own location.
func wholeDays(p domain.Period) domain.Period {
	if p.From != nil {
		f := *p.From
		start := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, f.Location())
		p.From = &start
	}
	if p.To != nil {
		t := *p.To
		end := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
		p.To = &end
	}
	return p
}
