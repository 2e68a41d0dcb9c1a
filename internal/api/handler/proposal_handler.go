package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
)

// ProposalHandler serves the proposal catalog.
type ProposalHandler struct {
	catalog ports.CatalogService
}

func NewProposalHandler(catalog ports.CatalogService) *ProposalHandler {
	return &ProposalHandler{catalog: catalog}
}

type proposalListResponse struct {
	Proposals []domain.Proposal `json:"proposals"`
	PageInfo  domain.PageInfo   `json:"pageInfo"`
}

type createProposalRequest struct {
	ProposalName      string `json:"proposalName" validate:"required"`
	ContractorName    string `json:"contractorName" validate:"required"`
	ContractorInn     string `json:"contractorInn"`
	ContractNumber    string `json:"contractNumber"`
	OkvedCode         string `json:"okvedCode"`
	Facility          string `json:"facility"`
	SocialFacility    string `json:"socialFacility"`
	Description       string `json:"description"`
	FullProposalPrice int64  `json:"fullProposalPrice" validate:"gte=0"`
}

// List returns one page of proposals after the request's afterId.
//
// @Summary      List proposals
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ProposalFilter  true  "Filter and cursor"
// @Success      200   {object}  proposalListResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /proposal/list [post]
func (h *ProposalHandler) List(c echo.Context) error {
	var filter domain.ProposalFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.catalog.ListProposals(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	items := page.Items
	if items == nil {
		items = []domain.Proposal{}
	}
	return c.JSON(http.StatusOK, proposalListResponse{
		Proposals: items,
		PageInfo:  domain.PageInfo{HasMore: page.HasMore, AfterID: page.AfterID},
	})
}

// Create adds a proposal to the catalog. Contractors always file under their
// own identity.
//
// @Summary      Create a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProposalRequest  true  "Proposal"
// @Success      201   {object}  domain.Proposal
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /proposal/create [post]
func (h *ProposalHandler) Create(c echo.Context) error {
	sub, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProposalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalog.CreateProposal(c.Request().Context(), domain.Proposal{
		ProposalName:      req.ProposalName,
		ContractorID:      sub,
		ContractorName:    req.ContractorName,
		ContractorInn:     req.ContractorInn,
		ContractNumber:    req.ContractNumber,
		OkvedCode:         req.OkvedCode,
		Facility:          req.Facility,
		SocialFacility:    req.SocialFacility,
		Description:       req.Description,
		FullProposalPrice: req.FullProposalPrice,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}
