package infra

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	reportCachePrefix = "reports:"
	// generationKey holds a counter bumped by every Invalidate.
	generationKey     = reportCachePrefix + "gen"
	snapshotPrefix    = reportCachePrefix + "snap:"
)

// ReportCache is a Redis read-through cache for report snapshots. Every call
// goes through a circuit breaker so a downed Redis costs one fast failure
// instead of a network timeout per request.
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
	cb  *CircuitBreaker
}

func NewReportCache(rdb *redis.Client, ttl time.Duration, cb *CircuitBreaker) *ReportCache {
	if cb == nil {
		cb = NewCircuitBreaker(DefaultCBConfig())
	}
	return &ReportCache{rdb: rdb, ttl: ttl, cb: cb}
}

func snapshotKey(gen int64, key string) string {
	return snapshotPrefix + strconv.FormatInt(gen, 10) + ":" + key
}

// Generation reads the counter; a missing counter is generation 0.
func (c *ReportCache) Generation(ctx context.Context) (int64, bool) {
	var gen int64
	err := c.cb.Execute(func() error {
		n, err := c.rdb.Get(ctx, generationKey).Int64()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		gen = n
		return err
	})
	if err != nil {
		log.Debug().Err(err).Msg("report cache: generation read failed")
		return 0, false
	}
	return gen, true
}

// Get reports a hit only when the key exists and decodes into dest.
func (c *ReportCache) Get(ctx context.Context, gen int64, key string, dest any) bool {
	var raw []byte
	err := c.cb.Execute(func() error {
		b, err := c.rdb.Get(ctx, snapshotKey(gen, key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		raw = b
		return err
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("report cache: get failed")
		return false
	}
	if raw == nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *ReportCache) Set(ctx context.Context, gen int64, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	err = c.cb.Execute(func() error {
		return c.rdb.Set(ctx, snapshotKey(gen, key), b, c.ttl).Err()
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("report cache: set failed")
	}
}

// Invalidate bumps the generation, then sweeps old snapshots. The sweep only
// reclaims memory; the bump alone hides them.
func (c *ReportCache) Invalidate(ctx context.Context) {
	err := c.cb.Execute(func() error {
		if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
			return err
		}
		var keys []string
		iter := c.rdb.Scan(ctx, 0, snapshotPrefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return c.rdb.Del(ctx, keys...).Err()
	})
	if err != nil {
		log.Warn().Err(err).Msg("report cache: invalidate failed")
	}
}
