package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"greengrocer/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry counts requests from one client IP in the current window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

// rateStore is a fixed-window counter per IP. Expired entries are swept on
// the request path at most once per purgeInterval.
type rateStore struct {
	mu        sync.Mutex
	entries   map[string]*rateEntry
	lastPurge time.Time
	now       func() time.Time
}

const purgeInterval = 5 * time.Minute

func newRateStore() *rateStore {
	return &rateStore{entries: make(map[string]*rateEntry), now: time.Now}
}

// hit records one request and reports whether it is within the limit, plus
// the end of the current window.
func (s *rateStore) hit(ip string, limit int, window time.Duration) (bool, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastPurge) >= purgeInterval {
		s.purgeLocked(now)
	}

	entry, ok := s.entries[ip]
	if !ok {
		entry = &rateEntry{}
		s.entries[ip] = entry
	}
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(window)
	}
	entry.count++
	return entry.count <= limit, entry.windowEnd
}

func (s *rateStore) purgeLocked(now time.Time) {
	purged := 0
	for ip, entry := range s.entries {
		if now.After(entry.windowEnd) {
			delete(s.entries, ip)
			purged++
		}
	}
	s.lastPurge = now
	if purged > 0 {
		log.Debug().
			Int("entries_purged", purged).
			Int("entries_remaining", len(s.entries)).
			Msg("rate limiter purged")
	}
}

// RateLimiter allows limit requests per window per client IP. A non-positive
// limit disables it.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return rateLimit(newRateStore(), limit, window)
}

func rateLimit(store *rateStore, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		ok, windowEnd := store.hit(c.ClientIP(), limit, window)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(windowEnd.Sub(store.now()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests, try again shortly"))
			return
		}
		c.Next()
	}
}

// retryAfterSeconds rounds the wait up to whole seconds, never below one.
func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
