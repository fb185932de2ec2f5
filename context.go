package fulcrum

import (
	"sync"

	"github.com/goccy/go-json"
)

// paramEntry is one path-parameter binding the router filled in while
// matching a route, e.g. Param or CatchAll segment "id" -> "42".
type paramEntry struct {
	name  string
	value string
}

// Context is the per-request scratchpad owned by the request task:
// the parsed Request, path parameters the router extracted, and a
// small typed state bag a front fang can use to pass data (an
// authenticated principal, a trace id) to later fangs and the handler.
// Pooled across requests the same way the teacher pools Ctx in
// context.go.
type Context struct {
	Request *Request

	params []paramEntry
	state  map[string]interface{}
	err    error
}

var contextPool = sync.Pool{
	New: func() interface{} {
		return &Context{}
	},
}

func getContext(req *Request) *Context {
	c := contextPool.Get().(*Context)
	c.Request = req
	return c
}

func releaseContext(c *Context) {
	c.Request = nil
	c.params = c.params[:0]
	for k := range c.state {
		delete(c.state, k)
	}
	c.err = nil
	contextPool.Put(c)
}

// setParam records a path-parameter binding; called by the router
// while walking the matched route's Param/CatchAll segments.
func (c *Context) setParam(name, value string) {
	c.params = append(c.params, paramEntry{name: name, value: value})
}

// Param returns a path parameter bound during routing, and whether it
// was present.
func (c *Context) Param(name string) (string, bool) {
	for _, p := range c.params {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// SetState stores a value in the per-request state bag, typically by a
// front fang (e.g. an auth fang storing the authenticated principal).
func (c *Context) SetState(key string, value interface{}) {
	if c.state == nil {
		c.state = make(map[string]interface{}, 2)
	}
	c.state[key] = value
}

// State retrieves a value previously stored with SetState.
func (c *Context) State(key string) (interface{}, bool) {
	v, ok := c.state[key]
	return v, ok
}

// Error records an error on the Context for a later back fang or
// error handler to inspect, and returns c for chaining.
func (c *Context) Error(err error) *Context {
	c.err = err
	return c
}

// GetError returns the error recorded on the Context, if any.
func (c *Context) GetError() error {
	return c.err
}

// JSON builds a Response with the given status and v marshaled as the
// JSON body, setting Content-Type accordingly.
func (c *Context) JSON(status Status, v interface{}) *Response {
	body, err := json.Marshal(v)
	if err != nil {
		return c.Text(StatusInternalServerError, err.Error())
	}
	res := NewResponse(status, body)
	res.Headers().SetString(HeaderContentType, JSONContentType.String())
	return res
}

// Text builds a Response with a plain-text body.
func (c *Context) Text(status Status, body string) *Response {
	res := NewResponse(status, []byte(body))
	res.Headers().SetString(HeaderContentType, TextContentType.String())
	return res
}

// HTML builds a Response with an HTML body.
func (c *Context) HTML(status Status, body string) *Response {
	res := NewResponse(status, []byte(body))
	res.Headers().SetString(HeaderContentType, HTMLContentType.String())
	return res
}

// NoContent builds an empty Response with the given status.
func (c *Context) NoContent(status Status) *Response {
	return NewResponse(status, nil)
}

// IP returns the remote address the underlying connection was
// accepted from (the engine sets this once per connection; empty for
// requests built through Server.Inject).
func (c *Context) IP() string {
	return c.Request.RemoteAddr()
}

// Cookie returns the value of a cookie from the request's Cookie
// header, and whether it was present.
func (c *Context) Cookie(name string) (string, bool) {
	header, ok := c.Request.Header("Cookie")
	if !ok {
		return "", false
	}
	v, ok := parseCookies(header)[name]
	return v, ok
}
