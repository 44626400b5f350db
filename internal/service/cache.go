package service

import "context"

// ReportCache stores rendered report snapshots. Implementations must treat
// every failure as a miss: the store stays the source of truth.
//
// Snapshots are filed under a generation. Invalidate moves the cache to a new
// generation, so a snapshot computed before a write and stored after it lands
// in a generation nobody reads any more.
type ReportCache interface {
	// Generation returns the current generation; ok is false when the cache
	// is unreachable, and the caller then neither reads nor stores.
	Generation(ctx context.Context) (gen int64, ok bool)
	Get(ctx context.Context, gen int64, key string, dest any) bool
	Set(ctx context.Context, gen int64, key string, value any)
	// Invalidate drops every cached snapshot; called after each ledger write.
	Invalidate(ctx context.Context)
}

type noopCache struct{}

func (noopCache) Generation(context.Context) (int64, bool)     { return 0, false }
func (noopCache) Get(context.Context, int64, string, any) bool { return false }
func (noopCache) Set(context.Context, int64, string, any)      {}
func (noopCache) Invalidate(context.Context)                   {}

func cacheOrNoop(c ReportCache) ReportCache {
	if c == nil {
		return noopCache{}
	}
	return c
}

// readThrough serves key from the cache or computes it with load. The
// generation is read before load runs and the result is stored under it.
func readThrough[T any](ctx context.Context, c ReportCache, key string, load func() (*T, error)) (*T, error) {
	gen, ok := c.Generation(ctx)
	if ok {
		var cached T
		if c.Get(ctx, gen, key, &cached) {
			return &cached, nil
		}
	}

	v, err := load()
	if err != nil {
		return nil, err
	}
	if ok {
		c.Set(ctx, gen, key, v)
	}
	return v, nil
}
