// Package timeout implements §5's deadline-racing handler wrapper: the
// handler's work runs on a bounded github.com/panjf2000/ants/v2 pool
// instead of an unbounded goroutine-per-request, and a Response is
// synthesized on deadline while the handler's goroutine is left to
// finish (and its result discarded) rather than forcibly killed, since
// Go has no safe preemption primitive for an arbitrary running handler.
//
// Unlike cors/ratelimit/accesslog, timeout wraps a single route's
// Handler directly rather than registering as a Fang: Chain.Run calls
// the handler after front fangs have already decided not to
// short-circuit, so a Fang has no seam to bound the handler call
// itself. Wrap a route's handler at registration time instead:
//
//	t, _ := timeout.New(timeout.Config{Duration: 2 * time.Second})
//	s.GET("/slow", t.Wrap(slowHandler))
package timeout

import (
	"time"

	"github.com/fulcrumhq/fulcrum"
	"github.com/panjf2000/ants/v2"
)

// Config controls the deadline and the backing worker pool size.
type Config struct {
	// Duration is the deadline a wrapped handler races against.
	Duration time.Duration

	// PoolSize bounds how many handler goroutines may run
	// concurrently; 0 means ants' package default.
	PoolSize int
}

// Timeout owns the bounded goroutine pool handlers wrapped with it
// dispatch onto.
type Timeout struct {
	duration time.Duration
	pool     *ants.Pool
}

// New builds a Timeout backed by an ants.Pool sized per cfg.
func New(cfg Config) (*Timeout, error) {
	size := cfg.PoolSize
	if size <= 0 {
		size = ants.DefaultAntsPoolSize
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Timeout{duration: cfg.Duration, pool: pool}, nil
}

// Release tears down the underlying pool. Call once at shutdown.
func (t *Timeout) Release() {
	t.pool.Release()
}

// Wrap returns a Handler that runs h on the pool and races it against
// t's deadline. On deadline, a 503 Service Unavailable Response is
// returned immediately; h's goroutine keeps running to completion in
// the background and its eventual Response is discarded.
func (t *Timeout) Wrap(h fulcrum.Handler) fulcrum.Handler {
	return func(c *fulcrum.Context) *fulcrum.Response {
		done := make(chan *fulcrum.Response, 1)

		err := t.pool.Submit(func() {
			done <- h(c)
		})
		if err != nil {
			return fulcrum.NewHttpError(fulcrum.StatusServiceUnavailable, "server busy").Response()
		}

		if t.duration <= 0 {
			return <-done
		}

		timer := time.NewTimer(t.duration)
		defer timer.Stop()

		select {
		case res := <-done:
			return res
		case <-timer.C:
			return fulcrum.NewHttpError(fulcrum.StatusServiceUnavailable, "request timed out").Response()
		}
	}
}
