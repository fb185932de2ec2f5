package fulcrum

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AsyncIO is the pluggable async-runtime capability §5 calls out: the
// server depends only on this seam, never on a concrete socket or TLS
// type. engine.go's gnetIO is the sole concrete implementation; tests
// drive the pipeline through Server.Inject (testharness.go) instead,
// bypassing AsyncIO entirely.
type AsyncIO interface {
	// Read returns whatever bytes are currently available without
	// blocking past what the runtime has already buffered.
	Read() ([]byte, error)
	// WriteAll writes p in full or returns an error.
	WriteAll(p []byte) error
	// Discard advances the read cursor past n already-read bytes.
	Discard(n int) error
	// Close tears down the connection.
	Close() error
	// RemoteAddr identifies the peer, for logging.
	RemoteAddr() string
}

// Server owns a finalized Router and the config every connection task
// reads from. Building routes happens through Router()/Group() before
// Listen; Listen finalizes the Router and starts the gnet-backed
// accept loop (engine.go).
type Server struct {
	router       *Router
	cfg          Config
	eng          asyncEngine
	shutdownOnce bool
}

// asyncEngine is the subset of engine.go's gnet wiring Server needs to
// start and stop, kept here as an interface so server.go never imports
// gnet directly.
type asyncEngine interface {
	run(addr string, cfg Config) error
	stop(ctx context.Context) error
}

// New builds a Server. Config defaults to DefaultConfig() when omitted.
func New(config ...Config) *Server {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	return &Server{
		router: NewRouter(),
		cfg:    cfg,
	}
}

// Router returns the server's Router for direct registration.
func (s *Server) Router() *Router { return s.router }

// Use registers global fangs.
func (s *Server) Use(fangs ...Fang) { s.router.Use(fangs...) }

// NotFound overrides the handler for unmatched routes.
func (s *Server) NotFound(h Handler) { s.router.NotFound(h) }

// Group creates a route group rooted at prefix.
func (s *Server) Group(prefix string) *Group { return s.router.Group(prefix) }

func (s *Server) GET(path string, handler Handler, fangs ...Fang) error {
	return s.router.GET(path, handler, fangs...)
}
func (s *Server) PUT(path string, handler Handler, fangs ...Fang) error {
	return s.router.PUT(path, handler, fangs...)
}
func (s *Server) POST(path string, handler Handler, fangs ...Fang) error {
	return s.router.POST(path, handler, fangs...)
}
func (s *Server) PATCH(path string, handler Handler, fangs ...Fang) error {
	return s.router.PATCH(path, handler, fangs...)
}
func (s *Server) DELETE(path string, handler Handler, fangs ...Fang) error {
	return s.router.DELETE(path, handler, fangs...)
}
func (s *Server) HEAD(path string, handler Handler, fangs ...Fang) error {
	return s.router.HEAD(path, handler, fangs...)
}
func (s *Server) OPTIONS(path string, handler Handler, fangs ...Fang) error {
	return s.router.OPTIONS(path, handler, fangs...)
}

// Listen finalizes the Router and starts the accept loop on addr,
// blocking until the server stops.
func (s *Server) Listen(addr string) error {
	if addr == "" {
		addr = ":3000"
	}
	if err := s.router.Finalize(); err != nil {
		return err
	}

	initLogger(s.cfg)
	if !s.cfg.DisableStartupMessage {
		displayStartupMessage(addr)
	}

	s.eng = newGnetEngine(s)
	return s.eng.run(addr, s.cfg)
}

// Shutdown stops accepting new connections and waits for in-flight
// connection tasks to drain, coordinated with an errgroup the way the
// teacher's gnet.Engine.Stop blocks on a context instead.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.eng == nil {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.eng.stop(gctx)
	})
	return g.Wait()
}

// dispatch resolves a parsed request against the finalized Router and
// runs its compiled Chain, falling back to NotFound/MethodNotAllowed,
// and to the configured ErrorHandler when no Response was produced. A
// Response the chain did return (e.g. a fang's own error Response) is
// written as is. This is the synchronous core both
// engine.go's connection loop and testharness.go's Inject drive --
// the only difference between them is how bytes arrive.
func (s *Server) dispatch(req *Request) *Response {
	c := getContext(req)
	defer releaseContext(c)

	chain, params, allowed, matched := s.router.Find(req.Method(), req.Path())
	for _, p := range params {
		c.setParam(p.name, p.value)
	}

	var res *Response
	switch {
	case matched:
		res = chain.Run(c)
	case len(allowed) > 0:
		res = NewMethodNotAllowedError(allowed).Response()
	default:
		res = s.router.notFound(c)
	}

	if res == nil {
		handler := s.cfg.ErrorHandler
		if handler == nil {
			handler = defaultErrorHandlerFunc
		}
		res = handler(c)
	}
	return res
}
