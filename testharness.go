package fulcrum

import (
	"bytes"
	"strconv"

	"github.com/fulcrumhq/fulcrum/internal/parser"
)

// Inject is the testing harness §4.6 calls for: it runs method/path/
// headers/body through the real wire codec and the compiled Router
// synchronously, bypassing AsyncIO (no socket, no gnet.Conn) entirely.
// Request's fields are only ever legitimately populated by ParseRequest
// (they back onto its private metadata buffer), so Inject builds the
// wire bytes in memory and reuses ParseRequest rather than duplicating
// its Slice bookkeeping a second way.
//
// Finalizes the Router on first use if the caller hasn't already.
func (s *Server) Inject(method Method, path string, headers map[string]string, body []byte) *Response {
	if !s.router.finalized {
		_ = s.router.Finalize()
	}

	raw := buildInjectedRequest(method, path, headers, body)

	req := getRequest()
	defer releaseRequest(req)
	p := parser.New()

	if _, err := ParseRequest(req, p, raw); err != nil {
		return errorToResponse(err)
	}
	return s.dispatch(req)
}

func buildInjectedRequest(method Method, path string, headers map[string]string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(method.String())
	buf.WriteByte(' ')
	buf.WriteString(path)
	buf.WriteString(" HTTP/1.1\r\n")

	hasContentLength := false
	for k, v := range headers {
		if equalFold([]byte(k), "Content-Length") {
			hasContentLength = true
		}
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(v)
		buf.WriteString("\r\n")
	}
	if len(body) > 0 && !hasContentLength {
		buf.WriteString("Content-Length: ")
		buf.WriteString(strconv.Itoa(len(body)))
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.Write(body)
	return buf.Bytes()
}
