package fulcrum

// FrontFang runs before the handler. Returning a non-nil Response
// short-circuits the chain: neither the handler nor any later front
// fang runs, but back fangs still see the short-circuit Response.
type FrontFang func(c *Context) *Response

// BackFang runs after the handler (or after a front fang
// short-circuits), and may mutate the in-progress Response.
type BackFang func(c *Context, res *Response)

// Fang is a middleware unit. It carries a front and/or back variant and
// the route-prefix it's registered against; fangs whose prefix is a
// prefix of a route's path are folded into that route's compiled Chain
// at router Finalize time, in registration order.
type Fang struct {
	Prefix string
	Front  FrontFang
	Back   BackFang
}

// Chain is the pre-composed sequence of front fangs, the terminal
// handler, and back fangs associated with one matched route. It is
// built once at Finalize and never mutated afterward, so concurrent
// requests share it without locking.
type Chain struct {
	front   []FrontFang
	back    []BackFang
	handler Handler
}

// Run executes the chain: front fangs in order (stopping early on the
// first non-nil Response), then the handler if nothing short-circuited,
// then every back fang in order.
func (ch Chain) Run(c *Context) *Response {
	var res *Response
	for _, f := range ch.front {
		if res = f(c); res != nil {
			break
		}
	}
	if res == nil {
		res = ch.handler(c)
	}
	for _, b := range ch.back {
		b(c, res)
	}
	return res
}
