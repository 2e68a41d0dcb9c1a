package domain

import (
	"encoding/json"
	"time"
)

// DefaultPageSize matches the catalog's initial request size.
const DefaultPageSize = 10

// PriceRange bounds the full proposal price. Either bound may be absent.
type PriceRange struct {
	Min *int64 `json:"min" validate:"omitempty,gte=0"`
	Max *int64 `json:"max" validate:"omitempty,gte=0"`
}

// Normalize raises Max to Min when both are set and Min > Max.
// Callers decide whether to apply it; the list fetcher never reorders bounds.
func (r PriceRange) Normalize() PriceRange {
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		v := *r.Min
		r.Max = &v
	}
	return r
}

// Period is a temporal range on proposal creation time.
type Period struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// PeriodToday returns the single-instant period the catalog starts with.
func PeriodToday(now time.Time) Period {
	from, to := now, now
	return Period{From: &from, To: &to}
}

// PeriodMonth spans the first to the last day of now's month.
func PeriodMonth(now time.Time) Period {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)
	return Period{From: &from, To: &to}
}

// ProposalFilter is the body of a proposal list request.
type ProposalFilter struct {
	ProposalID       string     `json:"proposalId"`
	ProposalName     string     `json:"proposalName"`
	ContractorID     string     `json:"contractorId"`
	ContractorName   string     `json:"contractorName"`
	ContractorInn    string     `json:"contractorInn"`
	ContractNumber   string     `json:"contractNumber"`
	Facilities       []string   `json:"facilities"`
	SocialFacilities []string   `json:"socialFacilities"`
	OkvedCodes       []string   `json:"okvedCodes"`
	Period           Period     `json:"period"`
	PriceRange       PriceRange `json:"priceRange"`
	AfterID          string     `json:"afterId"`
	Limit            int        `json:"limit" validate:"gte=0"`
}

// WithCursor returns a copy of f positioned at cursor with the given limit.
// Nil sets become empty so the wire form always carries arrays.
func (f ProposalFilter) WithCursor(cursor string, limit int) ProposalFilter {
	f.AfterID = cursor
	if limit > 0 {
		f.Limit = limit
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	f.Facilities = nonNil(f.Facilities)
	f.SocialFacilities = nonNil(f.SocialFacilities)
	f.OkvedCodes = nonNil(f.OkvedCodes)
	return f
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// PageInfo is the continuation block of a list response.
type PageInfo struct {
	HasMore bool   `json:"hasMore"`
	AfterID string `json:"afterId"`
}

// Page is one proposal list response. Items are opaque to the client.
type Page struct {
	Proposals []json.RawMessage `json:"proposals"`
	PageInfo  PageInfo          `json:"pageInfo"`
}

// Proposal is a catalog record as stored by the sandbox backend.
type Proposal struct {
	ID                string    `json:"proposalId"`
	ProposalName      string    `json:"proposalName"`
	ContractorID      string    `json:"contractorId"`
	ContractorName    string    `json:"contractorName"`
	ContractorInn     string    `json:"contractorInn"`
	ContractNumber    string    `json:"contractNumber,omitempty"`
	OkvedCode         string    `json:"okvedCode"`
	Facility          string    `json:"facility"`
	SocialFacility    string    `json:"socialFacility"`
	Description       string    `json:"description"`
	FullProposalPrice int64     `json:"fullProposalPrice"`
	CreatedAt         time.Time `json:"createdAt"`
}
