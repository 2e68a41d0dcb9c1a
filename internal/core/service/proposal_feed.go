package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
	"github.com/tenderhub/portal-client/internal/metrics"
)

const pathProposalList = "/proposal/list"

// ProposalFeed accumulates proposal pages fetched by cursor.
//
// Callers must not start a fetch while another is in flight, nor after
// HasMore reports false. The feed does not enforce this; overlapping calls
// may append the same page twice. Scroller is the guarded front end.
type ProposalFeed struct {
	client   ports.Requester
	url      string
	pageSize int
	log      zerolog.Logger

	mu      sync.Mutex
	items   []json.RawMessage
	hasMore bool
	cursor  string
}

func NewProposalFeed(client ports.Requester, baseURL string, pageSize int, log zerolog.Logger) *ProposalFeed {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &ProposalFeed{
		client:   client,
		url:      strings.TrimRight(baseURL, "/") + pathProposalList,
		pageSize: pageSize,
		log:      log,
	}
}

// FetchPage requests the page after cursor. A first page always starts from
// an empty cursor and replaces what was accumulated; later pages are appended
// in arrival order. On error the accumulated state is left untouched.
func (f *ProposalFeed) FetchPage(ctx context.Context, filter domain.ProposalFilter, cursor string, isFirstPage bool) (domain.Page, error) {
	if isFirstPage {
		cursor = ""
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = f.pageSize
	}
	body := filter.WithCursor(cursor, limit)

	var page domain.Page
	if err := f.client.DoJSON(ctx, http.MethodPost, f.url, body, &page); err != nil {
		f.log.Warn().Err(err).
			Str("after_id", cursor).
			Bool("first_page", isFirstPage).
			Msg("fetch proposals failed")
		return domain.Page{}, err
	}

	kind := "next"
	if isFirstPage {
		kind = "first"
	}
	metrics.ProposalPagesTotal.WithLabelValues(kind).Inc()

	f.mu.Lock()
	if isFirstPage {
		f.items = append([]json.RawMessage(nil), page.Proposals...)
		f.cursor = ""
	} else {
		f.items = append(f.items, page.Proposals...)
	}
	f.hasMore = page.PageInfo.HasMore
	if page.PageInfo.AfterID != "" {
		f.cursor = page.PageInfo.AfterID
	}
	f.mu.Unlock()

	f.log.Debug().
		Int("count", len(page.Proposals)).
		Bool("has_more", page.PageInfo.HasMore).
		Str("after_id", page.PageInfo.AfterID).
		Msg("proposal page received")
	return page, nil
}

func (f *ProposalFeed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Cursor is the afterId to send for the next page.
func (f *ProposalFeed) Cursor() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

// Items returns a copy of the accumulated proposals.
func (f *ProposalFeed) Items() []json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]json.RawMessage(nil), f.items...)
}

// Reset forgets everything fetched so far.
func (f *ProposalFeed) Reset() {
	f.mu.Lock()
	f.items, f.hasMore, f.cursor = nil, false, ""
	f.mu.Unlock()
}
