package fulcrum

import (
	"net/url"
	"sync"
)

// Request owns everything parsed off the wire for one HTTP/1.1
// request: a fixed metadata buffer (start-line + headers) that every
// Slice in method/path/queries/headers borrows from, and an optional
// payload buffer for the body. Nothing here outlives the connection
// task that owns it.
type Request struct {
	metadata [MetadataSize]byte
	metaLen  int

	method Method
	path   Slice

	queries *BoundedList
	headers *HeaderBoundedTable

	contentType ContentType
	hasBody     bool
	body        []byte

	// bodyClamped is set when the declared Content-Length exceeded
	// PayloadLimit and the body was truncated to fit. The bytes beyond
	// what was consumed are still sitting in the connection's read
	// buffer, undiscarded and untrusted as the start of the next
	// request, so the engine closes the connection instead of pipelining
	// off it (see OnTraffic).
	bodyClamped bool

	decodedPath string
	pathDecoded bool

	remoteAddr string
}

// HeaderBoundedTable is the BoundedList specialization request parsing
// fills directly from the wire (spec.md's headers: BoundedList<_,32>),
// kept distinct from response-side HeaderTable since the two have
// different lookup/mutation needs: requests are read-only after parse.
type HeaderBoundedTable = BoundedList

// newRequest allocates a Request ready for the parser to fill. Callers
// that want pooling should use getRequest/releaseRequest below instead.
func newRequest() *Request {
	return &Request{
		queries: NewBoundedList(MaxQueryPairs),
		headers: NewBoundedList(MaxHeaderPairs),
	}
}

var requestPool = sync.Pool{
	New: func() interface{} { return newRequest() },
}

// getRequest returns a pooled, empty Request ready for ParseRequest.
// One is acquired per connection in OnOpen and reused across every
// request that connection sends, matching the teacher's one-Codec-
// per-conn lifetime.
func getRequest() *Request {
	return requestPool.Get().(*Request)
}

// releaseRequest resets r and returns it to the pool. Called once per
// connection in OnClose, and once per call by Server.Inject.
func releaseRequest(r *Request) {
	r.reset()
	requestPool.Put(r)
}

// Method returns the parsed request method.
func (r *Request) Method() Method { return r.method }

// RawPath returns the request path exactly as it appeared on the wire
// (still percent-encoded), with any query string stripped.
func (r *Request) RawPath() string { return r.path.String() }

// Path returns the percent-decoded request path, decoding lazily on
// first access and caching the result for subsequent calls.
func (r *Request) Path() string {
	if !r.pathDecoded {
		if decoded, err := url.PathUnescape(r.path.String()); err == nil {
			r.decodedPath = decoded
		} else {
			r.decodedPath = r.path.String()
		}
		r.pathDecoded = true
	}
	return r.decodedPath
}

// Query returns the percent-decoded value of the first query parameter
// named key, and whether it was present.
func (r *Request) Query(key string) (string, bool) {
	v, ok := r.queries.Get(key)
	if !ok {
		return "", false
	}
	decoded, err := url.QueryUnescape(v.String())
	if err != nil {
		return v.String(), true
	}
	return decoded, true
}

// Header returns a request header's raw value by name, case-insensitive.
func (r *Request) Header(name string) (string, bool) {
	v, ok := r.headers.GetFold(name)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// HeaderCount returns how many header pairs the request carries.
func (r *Request) HeaderCount() int { return r.headers.Len() }

// HeaderAt returns the name/value pair at index i.
func (r *Request) HeaderAt(i int) (string, string) {
	k, v := r.headers.At(i)
	return k.String(), v.String()
}

// ContentType returns the request's parsed Content-Type.
func (r *Request) ContentType() ContentType { return r.contentType }

// HasBody reports whether the request declared a body.
func (r *Request) HasBody() bool { return r.hasBody }

// BodyClamped reports whether the declared Content-Length exceeded
// PayloadLimit, meaning Body() is truncated and the connection this
// request arrived on is being closed rather than kept alive.
func (r *Request) BodyClamped() bool { return r.bodyClamped }

// Body returns the request body, bound to PayloadLimit bytes.
func (r *Request) Body() []byte { return r.body }

// RemoteAddr returns the peer address the connection was accepted
// from, set once per connection by the engine (OnOpen) and left
// untouched by reset so it survives across requests on the same
// keep-alive connection. Empty for requests built via Server.Inject.
func (r *Request) RemoteAddr() string { return r.remoteAddr }

// SetRemoteAddr records the peer address. Called once per connection.
func (r *Request) SetRemoteAddr(addr string) { r.remoteAddr = addr }

// reset clears the Request for reuse from a sync.Pool, matching the
// teacher's pattern of resetting pooled pipeline objects (httpparser.Codec,
// bodyReader) instead of reallocating them per connection.
func (r *Request) reset() {
	r.metaLen = 0
	r.method = 0
	r.path = Slice{}
	r.queries.reset()
	r.headers.reset()
	r.contentType = ContentType{}
	r.hasBody = false
	r.bodyClamped = false
	if r.body != nil {
		bodyPool.Put(r.body)
		r.body = nil
	}
	r.decodedPath = ""
	r.pathDecoded = false
}
