package fulcrum

// Group is a route-prefix builder over a Router: every route registered
// through a Group gets the group's prefix prepended to its path and the
// group's fangs registered with that same prefix, so they compile into
// the Chain of every route under it and nothing outside it. Mirrors the
// teacher's group.go prefix-joining shape, generalized from middleware
// funcs to Fangs.
type Group struct {
	prefix string
	router *Router
	fangs  []Fang
}

// Group creates a route group rooted at prefix.
func (r *Router) Group(prefix string) *Group {
	return &Group{prefix: prefix, router: r}
}

// Use registers fangs scoped to this group's prefix.
func (g *Group) Use(fangs ...Fang) *Group {
	for _, f := range fangs {
		if f.Prefix == "" {
			f.Prefix = g.prefix
		}
		g.fangs = append(g.fangs, f)
	}
	return g
}

func (g *Group) join(pattern string) string {
	full := g.prefix
	if pattern != "" {
		if len(pattern) > 0 && pattern[0] != '/' && len(full) > 0 && full[len(full)-1] != '/' {
			full += "/"
		}
		full += pattern
	}
	return full
}

// Handle registers handler for method under the group's prefix.
func (g *Group) Handle(method Method, pattern string, handler Handler, fangs ...Fang) error {
	return g.router.Handle(method, g.join(pattern), handler, append(g.fangs, fangs...)...)
}

func (g *Group) GET(pattern string, handler Handler, fangs ...Fang) error {
	return g.Handle(MethodGet, pattern, handler, fangs...)
}
func (g *Group) PUT(pattern string, handler Handler, fangs ...Fang) error {
	return g.Handle(MethodPut, pattern, handler, fangs...)
}
func (g *Group) POST(pattern string, handler Handler, fangs ...Fang) error {
	return g.Handle(MethodPost, pattern, handler, fangs...)
}
func (g *Group) PATCH(pattern string, handler Handler, fangs ...Fang) error {
	return g.Handle(MethodPatch, pattern, handler, fangs...)
}
func (g *Group) DELETE(pattern string, handler Handler, fangs ...Fang) error {
	return g.Handle(MethodDelete, pattern, handler, fangs...)
}
func (g *Group) HEAD(pattern string, handler Handler, fangs ...Fang) error {
	return g.Handle(MethodHead, pattern, handler, fangs...)
}
func (g *Group) OPTIONS(pattern string, handler Handler, fangs ...Fang) error {
	return g.Handle(MethodOptions, pattern, handler, fangs...)
}

// Group creates a sub-group whose prefix is this group's prefix joined
// with prefix, inheriting this group's fangs.
func (g *Group) Group(prefix string) *Group {
	sub := &Group{
		prefix: g.join(prefix),
		router: g.router,
		fangs:  make([]Fang, len(g.fangs)),
	}
	copy(sub.fangs, g.fangs)
	return sub
}
