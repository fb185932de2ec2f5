package fulcrum

// ContentType is the closed set of body encodings the core recognizes.
// FormData retains the multipart boundary token as a Slice over its
// own copy of the token, independent of the Request's metadata buffer.
type ContentType struct {
	kind     contentKind
	boundary Slice
}

type contentKind uint8

const (
	ContentText contentKind = iota
	ContentHTML
	ContentJSON
	ContentURLEncoded
	ContentFormData
	ContentOctetStream
)

// Kind reports which member of the closed set ct is.
func (ct ContentType) Kind() contentKind {
	return ct.kind
}

// Boundary returns the multipart boundary token. Only meaningful when
// Kind() == ContentFormData.
func (ct ContentType) Boundary() Slice {
	return ct.boundary
}

// String renders the MIME type, including a FormData boundary param if
// present.
func (ct ContentType) String() string {
	switch ct.kind {
	case ContentText:
		return "text/plain; charset=utf-8"
	case ContentHTML:
		return "text/html; charset=utf-8"
	case ContentJSON:
		return "application/json"
	case ContentURLEncoded:
		return "application/x-www-form-urlencoded"
	case ContentFormData:
		if ct.boundary.Empty() {
			return "multipart/form-data"
		}
		return "multipart/form-data; boundary=" + ct.boundary.String()
	case ContentOctetStream:
		return "application/octet-stream"
	default:
		return "application/octet-stream"
	}
}

var (
	TextContentType        = ContentType{kind: ContentText}
	HTMLContentType        = ContentType{kind: ContentHTML}
	JSONContentType        = ContentType{kind: ContentJSON}
	URLEncodedContentType  = ContentType{kind: ContentURLEncoded}
	OctetStreamContentType = ContentType{kind: ContentOctetStream}
)

// FormDataContentType builds a ContentType{FormData} retaining the given
// boundary slice.
func FormDataContentType(boundary Slice) ContentType {
	return ContentType{kind: ContentFormData, boundary: boundary}
}

// parseContentType parses a raw `Content-Type` header value into the
// closed ContentType set. Unrecognized values fall back to
// OctetStreamContentType, matching the teacher's permissive parsing of
// custom headers rather than rejecting the request.
func parseContentType(raw []byte) ContentType {
	// Split at ';' to separate the media type from parameters.
	semi := indexByte(raw, ';')
	media := raw
	params := []byte(nil)
	if semi >= 0 {
		media = raw[:semi]
		params = raw[semi+1:]
	}
	media = trimSpace(media)

	switch {
	case equalFold(media, "text/plain"):
		return TextContentType
	case equalFold(media, "text/html"):
		return HTMLContentType
	case equalFold(media, "application/json"):
		return JSONContentType
	case equalFold(media, "application/x-www-form-urlencoded"):
		return URLEncodedContentType
	case equalFold(media, "multipart/form-data"):
		boundary := extractBoundary(params)
		return ContentType{kind: ContentFormData, boundary: NewSlice(boundary, 0, len(boundary))}
	default:
		return OctetStreamContentType
	}
}

// extractBoundary scans `; boundary=...` parameters, returning the raw
// boundary bytes (without quotes) as a standalone copy, since multipart
// boundaries are short and this keeps ContentType decoupled from the
// metadata buffer's lifetime rules for the common non-FormData path.
func extractBoundary(params []byte) []byte {
	const key = "boundary="
	idx := indexOf(params, key)
	if idx < 0 {
		return nil
	}
	rest := params[idx+len(key):]
	rest = trimSpace(rest)
	if len(rest) > 0 && rest[0] == '"' {
		end := indexByte(rest[1:], '"')
		if end >= 0 {
			rest = rest[1 : 1+end]
		} else {
			rest = rest[1:]
		}
	} else {
		if end := indexByte(rest, ';'); end >= 0 {
			rest = rest[:end]
		}
	}
	out := make([]byte, len(rest))
	copy(out, rest)
	return out
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func indexOf(b []byte, sub string) int {
	n, m := len(b), len(sub)
	if m == 0 || m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if equalFold(b[i:i+m], sub) {
			return i
		}
	}
	return -1
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && (b[start] == ' ' || b[start] == '\t') {
		start++
	}
	end := len(b)
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t') {
		end--
	}
	return b[start:end]
}
