package eth

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunBounded runs fn(i) for i in [0, n) concurrently, never more than
// maxConcurrency at a time, stopping at the first error. The decoder
// uses it for the token0()/token1() pair of each pool; decimals()
// lookups do not go through it.
func RunBounded(ctx context.Context, n, maxConcurrency int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return fn(gctx, i)
		})
	}

	return g.Wait()
}
