package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacearchive/internal/media"
	"spacearchive/internal/provider"
)

type result struct {
	page *provider.SearchPage
	err  error
}

// fakeSearcher answers each call with the next queued reply. A call whose
// reply channel is nil answers immediately with an empty page.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   []provider.SearchParams
	replies []chan result
	started chan provider.SearchParams
}

func newFake() *fakeSearcher {
	return &fakeSearcher{started: make(chan provider.SearchParams, 16)}
}

// queue registers a reply for the next unanswered call and returns it.
func (f *fakeSearcher) queue() chan result {
	ch := make(chan result, 1)
	f.mu.Lock()
	f.replies = append(f.replies, ch)
	f.mu.Unlock()
	return ch
}

func (f *fakeSearcher) Search(ctx context.Context, params provider.SearchParams) (*provider.SearchPage, error) {
	f.mu.Lock()
	idx := len(f.calls)
	f.calls = append(f.calls, params)
	var ch chan result
	if idx < len(f.replies) {
		ch = f.replies[idx]
	}
	f.mu.Unlock()

	f.started <- params
	if ch == nil {
		return &provider.SearchPage{}, nil
	}
	select {
	case r := <-ch:
		return r.page, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func pageOf(prefix string, n int) *provider.SearchPage {
	items := make([]media.Item, n)
	for i := range items {
		items[i] = media.Item{ID: fmt.Sprintf("%s-%d", prefix, i)}
	}
	return &provider.SearchPage{Items: items, Hits: n, TotalHits: 100}
}

func reply(ch chan result, page *provider.SearchPage, err error) {
	ch <- result{page: page, err: err}
}

func TestSearchHasMore(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			f := newFake()
			reply(f.queue(), pageOf("a", n), nil)
			s := New(f, nil)

			st := s.Search(context.Background(), provider.SearchParams{Query: "mars"})
			assert.Len(t, st.Items, n)
			assert.Equal(t, n == PageSize, st.HasMore)
			assert.Equal(t, 1, st.Page)
			assert.False(t, st.Loading)
			assert.Empty(t, st.Err)
		})
	}
}

func TestSearchOwnsPaging(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("a", 1), nil)
	s := New(f, nil)

	s.Search(context.Background(), provider.SearchParams{Query: "mars", Page: 7, PageSize: 99})
	require.Len(t, f.calls, 1)
	assert.Equal(t, 1, f.calls[0].Page)
	assert.Equal(t, PageSize, f.calls[0].PageSize)
}

func TestLoadMoreBeforeSearchIsNoop(t *testing.T) {
	f := newFake()
	s := New(f, nil)
	before := s.State()

	after := s.LoadMore(context.Background())
	assert.Equal(t, before, after)
	assert.Equal(t, 0, f.callCount())
}

func TestLoadMoreAppends(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("p1", PageSize), nil)
	reply(f.queue(), pageOf("p2", 5), nil)
	s := New(f, nil)

	s.Search(context.Background(), provider.SearchParams{Query: "mars", MediaType: "image"})
	st := s.LoadMore(context.Background())

	require.Equal(t, 2, f.callCount())
	assert.Equal(t, 2, f.calls[1].Page)
	assert.Equal(t, "mars", f.calls[1].Query)
	assert.Equal(t, "image", f.calls[1].MediaType)

	assert.Len(t, st.Items, PageSize+5)
	assert.Equal(t, "p1-0", st.Items[0].ID)
	assert.Equal(t, "p2-4", st.Items[PageSize+4].ID)
	assert.Equal(t, 2, st.Page)
	assert.False(t, st.HasMore)

	// Short last page: no further requests.
	s.LoadMore(context.Background())
	assert.Equal(t, 2, f.callCount())
}

func TestLoadMoreFailureKeepsItems(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("p1", PageSize), nil)
	reply(f.queue(), nil, errors.New("NASA API request failed: 500 Internal Server Error"))
	s := New(f, nil)

	s.Search(context.Background(), provider.SearchParams{Query: "mars"})
	st := s.LoadMore(context.Background())

	assert.Len(t, st.Items, PageSize)
	assert.Equal(t, 1, st.Page)
	assert.True(t, st.HasMore)
	assert.Equal(t, "NASA API request failed: 500 Internal Server Error", st.Err)
	assert.False(t, st.Loading)

	// Retry asks for the same page again.
	reply(f.queue(), pageOf("p2", 3), nil)
	st = s.LoadMore(context.Background())
	assert.Equal(t, 2, f.calls[2].Page)
	assert.Len(t, st.Items, PageSize+3)
	assert.Empty(t, st.Err)
}

func TestSearchFailureKeepsPreviousItems(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("old", PageSize), nil)
	reply(f.queue(), nil, errors.New("boom"))
	s := New(f, nil)

	s.Search(context.Background(), provider.SearchParams{Query: "mars"})
	st := s.Search(context.Background(), provider.SearchParams{Query: "venus"})

	assert.Len(t, st.Items, PageSize)
	assert.Equal(t, "old-0", st.Items[0].ID)
	assert.Equal(t, "boom", st.Err)
	assert.False(t, st.HasMore)

	s.LoadMore(context.Background())
	assert.Equal(t, 2, f.callCount())
}

func TestSearchFailureKeepsPageOfKeptItems(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("p1", PageSize), nil)
	reply(f.queue(), pageOf("p2", PageSize), nil)
	reply(f.queue(), nil, errors.New("boom"))
	s := New(f, nil)

	s.Search(context.Background(), provider.SearchParams{Query: "mars"})
	s.LoadMore(context.Background())
	st := s.Search(context.Background(), provider.SearchParams{Query: "venus"})

	assert.Len(t, st.Items, 2*PageSize)
	assert.Equal(t, 2, st.Page)
	assert.Equal(t, "boom", st.Err)
	assert.False(t, st.HasMore)
}

func TestOverlappingLoadMore(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("p1", PageSize), nil)
	pending := f.queue()
	s := New(f, nil)

	s.Search(context.Background(), provider.SearchParams{Query: "mars"})
	<-f.started

	done := make(chan State)
	go func() { done <- s.LoadMore(context.Background()) }()
	<-f.started

	st := s.LoadMore(context.Background())
	assert.True(t, st.Loading)
	assert.Equal(t, 2, f.callCount())

	reply(pending, pageOf("p2", PageSize), nil)
	final := <-done
	assert.Len(t, final.Items, 2*PageSize)
	assert.Equal(t, 2, final.Page)
	assert.Equal(t, 2, f.callCount())
}

func TestStaleSearchIsDiscarded(t *testing.T) {
	f := newFake()
	older := f.queue()
	newer := f.queue()
	s := New(f, nil)

	done := make(chan State)
	go func() { done <- s.Search(context.Background(), provider.SearchParams{Query: "mars"}) }()
	<-f.started

	go func() { done <- s.Search(context.Background(), provider.SearchParams{Query: "venus"}) }()
	<-f.started

	reply(newer, pageOf("venus", 3), nil)
	<-done
	reply(older, pageOf("mars", PageSize), nil)
	<-done

	st := s.State()
	require.Len(t, st.Items, 3)
	assert.Equal(t, "venus-0", st.Items[0].ID)
	assert.False(t, st.HasMore)
	assert.False(t, st.Loading)
}

func TestSearchSupersedesLoadMore(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("mars", PageSize), nil)
	staleMore := f.queue()
	reply(f.queue(), pageOf("venus", 2), nil)
	s := New(f, nil)

	s.Search(context.Background(), provider.SearchParams{Query: "mars"})
	<-f.started

	done := make(chan State)
	go func() { done <- s.LoadMore(context.Background()) }()
	<-f.started

	s.Search(context.Background(), provider.SearchParams{Query: "venus"})
	<-f.started

	reply(staleMore, pageOf("mars-more", PageSize), nil)
	<-done

	st := s.State()
	require.Len(t, st.Items, 2)
	assert.Equal(t, "venus-0", st.Items[0].ID)
	assert.Equal(t, 1, st.Page)
}

func TestResetRestoresInitialState(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("p1", PageSize), nil)
	reply(f.queue(), pageOf("p2", PageSize), nil)
	s := New(f, nil)
	initial := s.State()

	s.Search(context.Background(), provider.SearchParams{Query: "mars"})
	s.LoadMore(context.Background())
	s.Reset()

	assert.Equal(t, initial, s.State())

	// The forgotten query cannot be paged.
	s.LoadMore(context.Background())
	assert.Equal(t, 2, f.callCount())
}

func TestResetDiscardsInFlight(t *testing.T) {
	f := newFake()
	pending := f.queue()
	s := New(f, nil)
	initial := s.State()

	done := make(chan State)
	go func() { done <- s.Search(context.Background(), provider.SearchParams{Query: "mars"}) }()
	<-f.started

	s.Reset()
	reply(pending, pageOf("mars", PageSize), nil)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("search did not return")
	}
	assert.Equal(t, initial, s.State())
}

func TestStateIsACopy(t *testing.T) {
	f := newFake()
	reply(f.queue(), pageOf("a", 2), nil)
	s := New(f, nil)
	s.Search(context.Background(), provider.SearchParams{Query: "mars"})

	st := s.State()
	st.Items[0].ID = "mutated"
	assert.Equal(t, "a-0", s.State().Items[0].ID)
}
