package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool is the narrow worker-pool collaborator the operation engine's
// parallel fan-out depends on. It mirrors the spec's pool_create/
// pool_num_threads/work_join/pool_destroy quartet as a Go interface.
type Pool interface {
	// NumThreads returns the number of workers Join will use to shard
	// work, the figure the operation engine compares its working item
	// count against before deciding to fan out at all.
	NumThreads() int

	// Join runs every work func, waits for all of them, and returns the
	// first non-nil error any of them produced. A spurious worker
	// failure aborts the whole batch: Join does not attempt to let
	// already-started workers finish publishing partial results.
	Join(ctx context.Context, works []func() error) error

	// Close releases pool resources. The default pool holds none and
	// Close is a no-op, but callers should still call it symmetrically
	// with New in case a future pool implementation does hold
	// something.
	Close() error
}

// Config selects a pool's worker count. A zero Threads defaults to
// runtime.GOMAXPROCS(0), matching how the rest of this codebase sizes
// concurrency without a dedicated flag.
type Config struct {
	Threads int
}

type errgroupPool struct {
	threads int
}

// New constructs the default Pool, backed by golang.org/x/sync/errgroup
// with a worker-count limit.
func New(cfg Config) Pool {
	n := cfg.Threads
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	return &errgroupPool{threads: n}
}

func (p *errgroupPool) NumThreads() int { return p.threads }

func (p *errgroupPool) Join(ctx context.Context, works []func() error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.threads)

	for _, w := range works {
		work := w
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			return work()
		})
	}

	return g.Wait()
}

func (p *errgroupPool) Close() error { return nil }
