package fulcrum

import (
	"strconv"

	"github.com/fulcrumhq/fulcrum/internal/parser"
	"github.com/fulcrumhq/fulcrum/internal/pool"
)

// bodyPool recycles the byte buffers bodies are copied into, bounded
// at PayloadLimit the same way the rest of the pipeline bounds its
// per-request allocations.
var bodyPool = pool.NewBuffer(PayloadLimit, func(size int) []byte {
	return make([]byte, 0, size)
})

// mapParseError translates a definite (non-incomplete) parser failure
// into the wire status §4.1/§7 mandate: a malformed request line/header
// or a header count over capacity is BadRequest, an unsupported HTTP
// version is HTTPVersionNotSupported. Anything that isn't a
// *parser.ParseError (shouldn't happen, but the parser's contract isn't
// sealed) falls back to BadRequest rather than the opaque 500
// errorToResponse would otherwise produce.
func mapParseError(err error) error {
	pe, ok := err.(*parser.ParseError)
	if !ok {
		return BadRequest(err.Error())
	}
	switch pe.Kind {
	case parser.KindUnsupportedVersion:
		return HTTPVersionNotSupportedError("unsupported HTTP version")
	case parser.KindTooManyHeaders:
		return BadRequest("too many headers")
	default:
		return BadRequest("malformed request")
	}
}

// ParseRequest tokenizes raw (bytes read so far from a connection) into
// r, reusing p across calls on the same connection the way the
// teacher's OnOpen stashes one *wildcat.HTTPParser per gnet.Conn.
// Unlike the teacher's http_parser.go, which copies every header line
// into a map[string]string via strings.Split, the metadata block is
// copied once into r.metadata and every Slice here borrows from it;
// the body is copied into its own buffer.
//
// consumed is how many bytes of raw this request used; err is
// parser.ErrIncomplete if raw does not yet hold a full request (the
// caller should read more and retry with the same r and p). r is reset
// on entry, so a retry starts from a clean Request.
func ParseRequest(r *Request, p *parser.Parser, raw []byte) (consumed int, err error) {
	r.reset()
	metaLen := len(raw)
	if metaLen > MetadataSize {
		metaLen = MetadataSize
	}
	copy(r.metadata[:metaLen], raw[:metaLen])
	r.metaLen = metaLen

	res, perr := p.Parse(r.metadata[:metaLen], MaxHeaderPairs)
	if perr != nil {
		if perr == parser.ErrIncomplete {
			if metaLen == MetadataSize {
				return 0, BadRequest("request line or headers exceed metadata buffer")
			}
			return 0, perr
		}
		return 0, mapParseError(perr)
	}

	method, ok := MethodFromBytes(r.metadata[res.MethodOffset : res.MethodOffset+res.MethodLen])
	if !ok {
		return 0, BadRequest("unsupported method")
	}
	r.method = method

	rawPath := r.metadata[res.PathOffset : res.PathOffset+res.PathLen]
	pathLen := res.PathLen
	if q := indexByte(rawPath, '?'); q >= 0 {
		pathLen = q
		if err := parseQueryString(r, res.PathOffset+q+1, res.PathLen-q-1); err != nil {
			return 0, err
		}
	}
	r.path = NewSlice(r.metadata[:], res.PathOffset, pathLen)

	var contentLength int = -1
	for _, h := range res.Headers {
		keySlice := NewSlice(r.metadata[:], h.NameOffset, h.NameLen)
		valSlice := NewSlice(r.metadata[:], h.ValueOffset, h.ValueLen)
		if !r.headers.Append(keySlice, valSlice) {
			return 0, BadRequest("too many headers")
		}
		if equalFold(keySlice.Bytes(), "Content-Length") {
			if n, err := strconv.Atoi(valSlice.String()); err == nil {
				contentLength = n
			}
		}
		if equalFold(keySlice.Bytes(), "Content-Type") {
			r.contentType = parseContentType(valSlice.Bytes())
		}
	}

	bodyLen := 0
	if contentLength > 0 {
		r.hasBody = true
		bodyLen = contentLength
		if bodyLen > PayloadLimit {
			bodyLen = PayloadLimit
			// The declared length exceeds what we keep; the surplus
			// bytes are still coming down the wire and will land past
			// HeaderEnd+bodyLen, so the caller can't treat that point
			// as a clean request boundary. See Request.BodyClamped.
			r.bodyClamped = true
		}
	}

	total := res.HeaderEnd + bodyLen
	if len(raw) < total {
		return 0, parser.ErrIncomplete
	}

	if bodyLen > 0 {
		body := bodyPool.GetWithSize(bodyLen)[:bodyLen]
		copy(body, raw[res.HeaderEnd:res.HeaderEnd+bodyLen])
		r.body = body
	}

	return total, nil
}

// parseQueryString splits the query string at metadata[offset:offset+length]
// on '&' then '=' into r.queries, borrowing Slices from the same
// metadata buffer the rest of the request does.
func parseQueryString(r *Request, offset, length int) error {
	if length == 0 {
		return nil
	}
	query := r.metadata[offset : offset+length]

	start := 0
	for start <= len(query) {
		end := start
		for end < len(query) && query[end] != '&' {
			end++
		}
		pair := query[start:end]
		if len(pair) > 0 {
			eq := indexByte(pair, '=')
			var keyLen int
			if eq < 0 {
				keyLen = len(pair)
			} else {
				keyLen = eq
			}
			keySlice := NewSlice(r.metadata[:], offset+start, keyLen)
			valOffset := offset + start + keyLen
			valLen := 0
			if eq >= 0 {
				valOffset = offset + start + eq + 1
				valLen = len(pair) - eq - 1
			}
			valSlice := NewSlice(r.metadata[:], valOffset, valLen)
			if !r.queries.Append(keySlice, valSlice) {
				return BadRequest("too many query parameters")
			}
		}
		start = end + 1
	}
	return nil
}
