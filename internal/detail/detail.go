// Package detail aggregates the assets, metadata and captions of one media
// item. Each sub-fetch succeeds or fails on its own; the aggregate only
// reports an error when all of them failed.
package detail

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"golang.org/x/sync/errgroup"

	"spacearchive/internal/media"
)

// Source is the part of a provider an Aggregator needs.
type Source interface {
	Assets(ctx context.Context, id string) (media.AssetBundle, error)
	Metadata(ctx context.Context, id string) (media.Metadata, error)
	Captions(ctx context.Context, id string) (string, error)
}

// State is a read-only snapshot of an Aggregator. Assets and Metadata are
// nil when their sub-fetch failed; Captions is empty when captions are
// missing.
type State struct {
	ID       string            `json:"id"`
	Loading  bool              `json:"loading"`
	Err      string            `json:"error,omitempty"`
	Assets   media.AssetBundle `json:"assets"`
	Metadata media.Metadata    `json:"metadata"`
	Captions string            `json:"captions"`
}

// Aggregator holds the detail state of the item currently being viewed.
type Aggregator struct {
	src Source
	log *slog.Logger

	mu    sync.Mutex
	state State
	gen   uint64
}

// New creates an empty Aggregator. A nil logger uses slog.Default().
func New(src Source, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{src: src, log: logger}
}

// State returns a snapshot of the current state.
func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

func (a *Aggregator) snapshot() State {
	st := a.state
	st.Assets = maps.Clone(a.state.Assets)
	st.Metadata = maps.Clone(a.state.Metadata)
	return st
}

// Fetch loads the details of id, replacing whatever was shown before. An
// empty id is a no-op. A Fetch for a different id supersedes this one; its
// late result is discarded.
func (a *Aggregator) Fetch(ctx context.Context, id string) State {
	if id == "" {
		return a.State()
	}

	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.state = State{ID: id, Loading: true}
	a.mu.Unlock()

	var g errgroup.Group
	assets := Settle(ctx, &g, func(ctx context.Context) (media.AssetBundle, error) {
		return a.src.Assets(ctx, id)
	})
	metadata := Settle(ctx, &g, func(ctx context.Context) (media.Metadata, error) {
		return a.src.Metadata(ctx, id)
	})
	captions := Settle(ctx, &g, func(ctx context.Context) (string, error) {
		return a.src.Captions(ctx, id)
	})
	_ = g.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		a.log.Debug("discarding stale details", slog.String("id", id))
		return a.snapshot()
	}

	st := State{ID: id}
	if assets.OK() {
		st.Assets = assets.Value
	} else {
		a.log.Debug("assets unavailable", slog.String("id", id), slog.Any("error", assets.Err))
	}
	if metadata.OK() {
		st.Metadata = metadata.Value
	} else {
		a.log.Debug("metadata unavailable", slog.String("id", id), slog.Any("error", metadata.Err))
	}
	if captions.OK() {
		st.Captions = captions.Value
	} else {
		a.log.Warn("no captions found", slog.String("id", id))
	}

	if !assets.OK() && !metadata.OK() && !captions.OK() {
		st.Err = fmt.Sprintf("failed to fetch media details: assets: %v; metadata: %v; captions: %v",
			assets.Err, metadata.Err, captions.Err)
	}

	a.state = st
	return a.snapshot()
}

// Reset clears the state and discards any Fetch still in flight.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.state = State{}
}
