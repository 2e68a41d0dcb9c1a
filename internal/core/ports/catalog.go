package ports

import (
	"context"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

// ProposalRepository reads and writes sandbox proposals.
type ProposalRepository interface {
	Create(ctx context.Context, p *domain.Proposal) error
	// List returns up to filter.Limit+1 proposals strictly after filter.AfterID,
	// ordered by id, so the caller can tell whether another page exists.
	List(ctx context.Context, filter domain.ProposalFilter) ([]domain.Proposal, error)
}

// ProposalList is one page of the sandbox catalog.
type ProposalList struct {
	Items   []domain.Proposal
	HasMore bool
	AfterID string
}

// CatalogService serves cursor-paginated proposal listings.
type CatalogService interface {
	ListProposals(ctx context.Context, filter domain.ProposalFilter) (*ProposalList, error)
	CreateProposal(ctx context.Context, p domain.Proposal) (*domain.Proposal, error)
}

// ProfileRepository stores dashboard profiles keyed by account.
type ProfileRepository interface {
	SaveAdmin(ctx context.Context, owner string, p domain.AdminProfile) error
	SaveContractor(ctx context.Context, owner string, p domain.ContractorProfile) error
}
