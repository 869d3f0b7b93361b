// Package session implements an incremental paginated search over a
// Provider. A Session holds the results of one query as they are paged in;
// a newer Search or a Reset invalidates every response still in flight.
package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"spacearchive/internal/media"
	"spacearchive/internal/provider"
)

// PageSize is the number of results requested per page. A page of exactly
// this many hits is taken to mean more may follow.
const PageSize = 20

// Searcher is the part of a provider a Session needs.
type Searcher interface {
	Search(ctx context.Context, params provider.SearchParams) (*provider.SearchPage, error)
}

// State is a read-only snapshot of a Session.
type State struct {
	Items     []media.Item `json:"items"`
	Loading   bool         `json:"loading"`
	Err       string       `json:"error,omitempty"`
	HasMore   bool         `json:"has_more"`
	Page      int          `json:"page"`
	TotalHits int          `json:"total_hits"`
}

// Session owns the paginated state of one query. It is safe for concurrent
// use, but at most one request is in flight at a time per generation.
type Session struct {
	src Searcher
	log *slog.Logger

	mu    sync.Mutex
	state State
	last  *provider.SearchParams // params of the last search, replayed by LoadMore
	gen   uint64                 // bumped by Search and Reset
}

// New creates an empty Session. A nil logger uses slog.Default().
func New(src Searcher, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{src: src, log: logger, state: initialState()}
}

func initialState() State {
	return State{Page: 1}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() State {
	st := s.state
	st.Items = slices.Clone(s.state.Items)
	return st
}

// Search starts a new query at page 1, superseding any request in flight.
// Page and PageSize in params are ignored. On failure the previous results
// stay visible and the error is recorded.
func (s *Session) Search(ctx context.Context, params provider.SearchParams) State {
	params.Page = 1
	params.PageSize = PageSize

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.last = &params
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	page, err := s.src.Search(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug("discarding stale search response", slog.String("q", params.Query))
		return s.snapshot()
	}

	s.state.Loading = false
	if err != nil {
		s.state.Err = err.Error()
		// Kept items belong to the previous query and are never paged.
		s.state.HasMore = false
		return s.snapshot()
	}

	s.state.Items = slices.Clone(page.Items)
	s.state.Page = 1
	s.state.HasMore = page.Hits == PageSize
	s.state.TotalHits = page.TotalHits
	return s.snapshot()
}

// LoadMore appends the next page of the last query. It returns without a
// request when nothing was searched yet, a request is in flight, or the last
// page was short.
func (s *Session) LoadMore(ctx context.Context) State {
	s.mu.Lock()
	if s.last == nil || s.state.Loading || !s.state.HasMore {
		st := s.snapshot()
		s.mu.Unlock()
		return st
	}
	gen := s.gen
	params := *s.last
	params.Page = s.state.Page + 1
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	page, err := s.src.Search(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug("discarding stale page", slog.String("q", params.Query), slog.Int("page", params.Page))
		return s.snapshot()
	}

	s.state.Loading = false
	if err != nil {
		s.state.Err = err.Error()
		return s.snapshot()
	}

	s.state.Items = append(s.state.Items, page.Items...)
	s.state.Page = params.Page
	s.state.HasMore = page.Hits == PageSize
	s.state.TotalHits = page.TotalHits
	return s.snapshot()
}

// Reset returns the Session to its initial empty state and forgets the last
// query. Responses still in flight are discarded when they arrive.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.last = nil
	s.state = initialState()
}
