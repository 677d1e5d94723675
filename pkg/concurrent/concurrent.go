package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs fn for every item in its own goroutine and waits for all of
// them. At most limit calls run at once; limit <= 0 means no limit.
// The first error cancels the context passed to the remaining calls and is
// returned.
func ForEach[T any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, idx int, item T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for idx, item := range items {
		g.Go(func() error {
			return fn(ctx, idx, item)
		})
	}
	return g.Wait()
}

// Map is ForEach collecting one result per item, in input order.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	err := ForEach(ctx, items, limit, func(ctx context.Context, idx int, item T) error {
		r, err := fn(ctx, item)
		if err != nil {
			return err
		}
		out[idx] = r
		return nil
	})
	return out, err
}
