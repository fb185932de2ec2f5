package fulcrum

import (
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"
)

// Response is the status/headers/body a Chain produces. Its Size()
// mirrors the teacher's responseWriter.Write precomputed-total-size
// pattern (response.go): every field needed to compute the exact wire
// length is known before any bytes are written, so WriteResponse can
// reserve Encode's buffer once instead of growing it.
type Response struct {
	status  Status
	headers *HeaderTable
	body    []byte
}

// NewResponse builds a Response with status and body, ready to have
// headers set on it before being handed to the writer.
func NewResponse(status Status, body []byte) *Response {
	return &Response{status: status, headers: NewHeaderTable(), body: body}
}

// Status returns the response's status code.
func (r *Response) Status() Status { return r.status }

// SetStatus overwrites the response's status code.
func (r *Response) SetStatus(s Status) { r.status = s }

// Body returns the response body bytes.
func (r *Response) Body() []byte { return r.body }

// SetBody overwrites the response body, updating Content-Length to
// match. Handlers that stream or omit a body (HEAD responses) should
// call this once with the final bytes before the chain returns.
func (r *Response) SetBody(body []byte) {
	r.body = body
	r.headers.SetString(HeaderContentLength, strconv.Itoa(len(body)))
}

// Headers returns the header table for direct mutation (Set/Append/
// AddSetCookie/...).
func (r *Response) Headers() *HeaderTable { return r.headers }

const httpVersion = "HTTP/1.1"

// imfFixdate is the Date header's wire format (RFC 9110 §5.6.7), the
// same layout net/http calls TimeFormat; spelled out here so this
// package never needs to import net/http for one constant.
const imfFixdate = "Mon, 02 Jan 2006 15:04:05 GMT"

// finalize synthesizes Content-Length and Date per the writer contract:
// a present body without an explicit Content-Length gets one; an
// absent body gets Content-Length: 0 unless the status is 204 or 304,
// which forbid a body entirely; Date is synthesized from the wall
// clock in IMF-fixdate form if not already set. Called once by
// WriteResponse before Size/Encode so the two never disagree.
func (r *Response) finalize() {
	if _, ok := r.headers.Get(HeaderContentLength); !ok {
		switch r.status {
		case StatusNoContent, StatusNotModified:
		default:
			r.headers.SetString(HeaderContentLength, strconv.Itoa(len(r.body)))
		}
	}
	if _, ok := r.headers.Get(HeaderDate); !ok {
		r.headers.SetString(HeaderDate, time.Now().UTC().Format(imfFixdate))
	}
}

// Size reports the exact number of bytes Encode will write: the status
// line, every header line, the blank line, and the body.
func (r *Response) Size() int {
	statusText := r.status.Text()
	statusLine := len(httpVersion) + 1 + 3 + 1 + len(statusText) + 2
	return statusLine + r.headers.Size() + 2 + len(r.body)
}

// Encode writes the status line, headers, blank line, and body into buf
// in one pass. It does not reserve buf itself; WriteResponse reserves
// Size() bytes first, so there is no intermediate growth, matching the
// teacher's single-allocation write discipline.
func (r *Response) Encode(buf *bytebufferpool.ByteBuffer) {
	buf.WriteString(httpVersion)
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(r.status.Int()))
	buf.WriteByte(' ')
	buf.WriteString(r.status.Text())
	buf.Write(crlf)

	r.headers.Encode(buf)
	buf.Write(crlf)

	buf.Write(r.body)
}

// reset clears the Response's status, body and headers. Responses are
// not pooled; each one comes from NewResponse.
func (r *Response) reset() {
	r.status = 0
	r.body = nil
	r.headers.Reset()
}
