package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

// Scroller drives a ProposalFeed the way an infinite list does: at most one
// fetch at a time, and no next page once the server says there is none.
type Scroller struct {
	feed *ProposalFeed
	log  zerolog.Logger

	mu       sync.Mutex
	filter   domain.ProposalFilter
	applied  bool
	inFlight bool
	lastErr  error
}

func NewScroller(feed *ProposalFeed, log zerolog.Logger) *Scroller {
	return &Scroller{feed: feed, log: log}
}

// Apply starts a new filter session and loads its first page. Price bounds
// are normalized before dispatch. It reports false without fetching when a
// fetch is already running.
func (s *Scroller) Apply(ctx context.Context, filter domain.ProposalFilter) (bool, error) {
	filter.PriceRange = filter.PriceRange.Normalize()

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return false, nil
	}
	s.inFlight = true
	s.filter = filter
	s.applied = true
	s.mu.Unlock()

	_, err := s.feed.FetchPage(ctx, filter, "", true)
	s.finish(err)
	return true, err
}

// LoadMore fetches the next page of the current filter. It is a no-op,
// reporting false, before Apply, while a fetch is running, or once the feed
// is exhausted.
func (s *Scroller) LoadMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if !s.applied || s.inFlight || !s.feed.HasMore() {
		inFlight := s.inFlight
		s.mu.Unlock()
		s.log.Debug().Bool("in_flight", inFlight).Msg("load more skipped")
		return false, nil
	}
	s.inFlight = true
	filter := s.filter
	s.mu.Unlock()

	_, err := s.feed.FetchPage(ctx, filter, s.feed.Cursor(), false)
	s.finish(err)
	return true, err
}

func (s *Scroller) finish(err error) {
	s.mu.Lock()
	s.inFlight = false
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Scroller) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Err is the outcome of the most recent fetch.
func (s *Scroller) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Scroller) HasMore() bool {
	return s.feed.HasMore()
}

func (s *Scroller) Items() []json.RawMessage {
	return s.feed.Items()
}
