package fulcrum

// Handler handles a matched request and returns the Response to write
// back. Unlike the teacher's void Handler+Ctx.Next() model, handlers
// here are pure functions of Context producing a Response directly;
// chain sequencing (what used to be Next()) is owned by Chain.Run.
type Handler func(c *Context) *Response

// FromRequest is the pluggable decode capability a type can implement
// to populate itself from a Context: path params, query pairs, and (for
// JSON bodies) the decoded payload. Nothing in this package calls it;
// Context's BindJSON, BindQuery and BindParams decode without it.
type FromRequest interface {
	FromRequest(c *Context) error
}
