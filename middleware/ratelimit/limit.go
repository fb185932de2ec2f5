// Package ratelimit implements a per-client token-bucket Fang, grounded
// on the teacher's visitors map of golang.org/x/time/rate.Limiters keyed
// by IP, adapted to the Fang{Prefix,Front,Back} model and *fulcrum.HttpError.
package ratelimit

import (
	"strconv"
	"sync"
	"time"

	"github.com/fulcrumhq/fulcrum"
	"golang.org/x/time/rate"
)

// Config holds the rate-limiting settings: requests per duration,
// burst size, and stale-visitor expiration.
type Config struct {
	Requests  int           // Max requests per duration
	Burst     int           // Burst size
	Duration  time.Duration // Duration window (e.g. 1 minute)
	ExpiresIn time.Duration // Visitor entry expiration

	// KeyFunc extracts the rate-limit bucket key from a request,
	// defaulting to c.IP() when nil.
	KeyFunc func(c *fulcrum.Context) string
}

// DefaultConfig returns the teacher's default: 1 request/minute with a
// burst of 5, visitors expiring after an hour of inactivity.
func DefaultConfig() Config {
	return Config{
		Requests:  1,
		Burst:     5,
		Duration:  time.Minute,
		ExpiresIn: time.Hour,
	}
}

// ErrLimited is the error recorded on the Context when a request is
// rejected, matching the teacher's ErrLimiter.
var ErrLimited = fulcrum.NewHttpError(fulcrum.StatusTooManyRequests, "rate limit reached")

// visitor pairs a limiter with its last-seen time, for expiry sweeps.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore is the per-Fang visitors map; the teacher used one
// package-level map, but a package-level store would leak state across
// unrelated New calls (tests in particular), so each Fang owns its own.
type limiterStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func newLimiterStore(expiresIn time.Duration) *limiterStore {
	s := &limiterStore{visitors: make(map[string]*visitor)}
	if expiresIn > 0 {
		go s.cleanupLoop(expiresIn)
	}
	return s
}

func (s *limiterStore) cleanupLoop(expiresIn time.Duration) {
	for range time.Tick(time.Minute) {
		s.mu.Lock()
		for key, v := range s.visitors {
			if time.Since(v.lastSeen) > expiresIn {
				delete(s.visitors, key)
			}
		}
		s.mu.Unlock()
	}
}

func (s *limiterStore) get(key string, cfg Config) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[key]
	if !ok {
		limiter := rate.NewLimiter(rate.Every(cfg.Duration/time.Duration(cfg.Requests)), cfg.Burst)
		s.visitors[key] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// New builds a rate-limiting Fang applied to every request under
// prefix. An empty prefix applies it globally.
func New(prefix string, config ...Config) fulcrum.Fang {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *fulcrum.Context) string { return c.IP() }
	}

	store := newLimiterStore(cfg.ExpiresIn)

	return fulcrum.Fang{
		Prefix: prefix,
		Front: func(c *fulcrum.Context) *fulcrum.Response {
			key := cfg.KeyFunc(c)
			limiter := store.get(key, cfg)

			if !limiter.Allow() {
				c.Error(ErrLimited)
				res := ErrLimited.Response()
				res.Headers().SetString(fulcrum.HeaderRetryAfter, strconv.Itoa(int(cfg.Duration.Seconds())))
				return res
			}
			return nil
		},
	}
}
