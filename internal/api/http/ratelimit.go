package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	apperrors "github.com/spec-kit/job-board/pkg/util"
)

const (
	limiterEntryTTL   = 10 * time.Minute
	limiterSweepAbove = 1024
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter throttles per client IP. Idle entries are swept once the map grows.
type ipRateLimiter struct {
	perSecond rate.Limit
	burst     int
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*limiterEntry
}

func newIPRateLimiter(perSecond float64, burst int) *ipRateLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 5
	}
	return &ipRateLimiter{
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		now:       time.Now,
		entries:   map[string]*limiterEntry{},
	}
}

func (l *ipRateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= limiterSweepAbove {
			l.sweep(now)
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(l.perSecond, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *ipRateLimiter) sweep(now time.Time) {
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > limiterEntryTTL {
			delete(l.entries, key)
		}
	}
}

// LoginRateLimit rejects callers that exceed the per-IP login budget.
func LoginRateLimit(perSecond float64, burst int) fiber.Handler {
	limiter := newIPRateLimiter(perSecond, burst)
	return func(c *fiber.Ctx) error {
		if !limiter.allow(c.IP()) {
			return apperrors.NewRateLimited()
		}
		return c.Next()
	}
}
