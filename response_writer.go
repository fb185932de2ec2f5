package fulcrum

import "github.com/valyala/bytebufferpool"

// ResponseWriter is the abstract byte-stream sink a Response is
// flushed to. It is the seam the spec's non-goals name: this package
// only depends on Write([]byte) returning bytes written and an error,
// never on a concrete socket or TLS type. engine.go's asyncIOWriter
// (an adapter over an AsyncIO's WriteAll) is the only concrete
// implementation in this module.
type ResponseWriter interface {
	Write([]byte) (int, error)
}

// WriteResponse reserves a pooled buffer at res.Size(), encodes res
// into it in one pass, writes the result to w, and returns the buffer
// to its pool. Mirrors the teacher's WriteResponse
// (internal/httpparser/httpparser.go), generalized from a raw
// status/header/body triple to a Response.
func WriteResponse(w ResponseWriter, res *Response) (int, error) {
	res.finalize()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.Reset()
	if cap(buf.B) < res.Size() {
		buf.B = make([]byte, 0, res.Size())
	}
	res.Encode(buf)

	return w.Write(buf.B)
}
