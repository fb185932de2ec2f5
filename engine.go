package fulcrum

import (
	"context"

	"github.com/fulcrumhq/fulcrum/internal/parser"
	"github.com/panjf2000/gnet/v2"
)

// gnetEngine is the asyncEngine Server.Listen/Shutdown drive. It keeps
// gnet entirely out of server.go, the same separation the teacher
// draws between Server (route building, Listen/Shutdown sugar) and
// httpServer (the gnet.BuiltinEventEngine doing the actual I/O).
type gnetEngine struct {
	gnet.BuiltinEventEngine

	srv *Server
	eng gnet.Engine
}

func newGnetEngine(s *Server) *gnetEngine {
	return &gnetEngine{srv: s}
}

func (e *gnetEngine) run(addr string, cfg Config) error {
	return gnet.Run(
		e,
		"tcp://"+addr,
		gnet.WithMulticore(true),
		gnet.WithReuseAddr(true),
		gnet.WithReusePort(true),
		gnet.WithTCPNoDelay(gnet.TCPNoDelay),
		gnet.WithTCPKeepAlive(cfg.IdleTimeout),
	)
}

func (e *gnetEngine) stop(ctx context.Context) error {
	return e.eng.Stop(ctx)
}

// connState is the per-connection scratch gnet.Conn.SetContext stashes,
// mirroring the teacher's single *httpparser.Codec per conn except it
// also owns the pooled *Request the parser fills across OnTraffic
// calls, since a request can arrive split across several reads.
type connState struct {
	parser *parser.Parser
	req    *Request
}

// gnetIO adapts a gnet.Conn to AsyncIO, the only concrete
// implementation of that seam in this module.
type gnetIO struct {
	c gnet.Conn
}

func (g gnetIO) Read() ([]byte, error)    { return g.c.Peek(-1) }
func (g gnetIO) WriteAll(p []byte) error  { _, err := g.c.Write(p); return err }
func (g gnetIO) Discard(n int) error      { _, err := g.c.Discard(n); return err }
func (g gnetIO) Close() error             { return g.c.Close() }
func (g gnetIO) RemoteAddr() string       { return g.c.RemoteAddr().String() }

func (e *gnetEngine) OnBoot(eng gnet.Engine) gnet.Action {
	e.eng = eng
	return gnet.None
}

func (e *gnetEngine) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	req := getRequest()
	req.SetRemoteAddr(c.RemoteAddr().String())
	c.SetContext(&connState{
		parser: parser.New(),
		req:    req,
	})
	return nil, gnet.None
}

func (e *gnetEngine) OnClose(c gnet.Conn, err error) gnet.Action {
	if cs, ok := c.Context().(*connState); ok && cs != nil {
		releaseRequest(cs.req)
	}
	return gnet.None
}

// OnTraffic parses and dispatches every complete request currently
// buffered on c, the same processed-cursor loop the teacher's OnTraffic
// runs, adapted to ParseRequest/Server.dispatch/WriteResponse instead
// of http.ReadRequest/Router.ServeHTTP/httpparser.Codec.WriteResponse.
func (e *gnetEngine) OnTraffic(c gnet.Conn) gnet.Action {
	cs := c.Context().(*connState)
	nio := gnetIO{c: c}

	buf, _ := nio.Read()
	n := len(buf)
	processed := 0
	closeConn := false

	for processed < n {
		consumed, err := ParseRequest(cs.req, cs.parser, buf[processed:])
		if err == parser.ErrIncomplete {
			break
		}
		if err != nil {
			writeErrorResponse(nio, err)
			closeConn = true
			break
		}
		if consumed == 0 {
			break
		}

		res := e.srv.dispatch(cs.req)
		if connection, ok := cs.req.Header("Connection"); ok && equalFold([]byte(connection), "close") {
			closeConn = true
			res.Headers().SetString(HeaderConnection, "close")
		}
		if cs.req.BodyClamped() {
			// The surplus body bytes past PayloadLimit are still in
			// flight and would otherwise be misread as the next
			// request once they arrive; there's no clean boundary to
			// resume pipelining from, so the connection can't be kept
			// alive regardless of what the client asked for.
			closeConn = true
			res.Headers().SetString(HeaderConnection, "close")
		}
		if err := writeResponse(nio, res); err != nil {
			closeConn = true
		}

		cs.req.reset()
		processed += consumed

		if closeConn {
			break
		}
	}

	if processed > 0 {
		nio.Discard(processed)
	}
	if closeConn {
		return gnet.Close
	}
	return gnet.None
}

// writeErrorResponse writes a minimal, bodyless-or-not error Response
// for requests ParseRequest could not make sense of, per the error
// propagation policy: a parse failure produces a best-effort response
// and the connection is then closed.
func writeErrorResponse(nio AsyncIO, err error) {
	res := errorToResponse(err)
	_ = writeResponse(nio, res)
}

// writeResponse adapts AsyncIO.WriteAll to WriteResponse's
// ResponseWriter seam.
func writeResponse(nio AsyncIO, res *Response) error {
	_, err := WriteResponse(asyncIOWriter{nio}, res)
	return err
}

type asyncIOWriter struct{ io AsyncIO }

func (w asyncIOWriter) Write(p []byte) (int, error) {
	if err := w.io.WriteAll(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
