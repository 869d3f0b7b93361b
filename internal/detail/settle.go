package detail

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one fan-out branch.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the branch succeeded.
func (o *Outcome[T]) OK() bool { return o.Err == nil }

// Settle runs fn on g and records its result in the returned Outcome, which
// is valid once g.Wait returns. The branch never fails the group, so sibling
// branches always run to completion.
func Settle[T any](ctx context.Context, g *errgroup.Group, fn func(context.Context) (T, error)) *Outcome[T] {
	o := &Outcome[T]{}
	g.Go(func() error {
		o.Value, o.Err = fn(ctx)
		return nil
	})
	return o
}
