package fulcrum

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

// StdHeader is one of the well-known header names given a dedicated,
// O(1) slot in a HeaderTable. The set and names are grounded on
// ohkami's `Header!{45; ...}` macro (original_source/ohkami/src/response/headers.rs),
// with Set-Cookie pulled out into its own ordered, multi-valued list
// the same way ohkami keeps it out of the indexed slot table.
type StdHeader int

const (
	HeaderAcceptRanges StdHeader = iota
	HeaderAccessControlAllowCredentials
	HeaderAccessControlAllowHeaders
	HeaderAccessControlAllowMethods
	HeaderAccessControlAllowOrigin
	HeaderAccessControlExposeHeaders
	HeaderAccessControlMaxAge
	HeaderAge
	HeaderAllow
	HeaderAltSvc
	HeaderCacheControl
	HeaderCacheStatus
	HeaderCDNCacheControl
	HeaderConnection
	HeaderContentDisposition
	HeaderContentEncoding
	HeaderContentLanguage
	HeaderContentLength
	HeaderContentLocation
	HeaderContentRange
	HeaderContentSecurityPolicy
	HeaderContentSecurityPolicyReportOnly
	HeaderContentType
	HeaderDate
	HeaderETag
	HeaderExpires
	HeaderLink
	HeaderLocation
	HeaderProxyAuthenticate
	HeaderReferrerPolicy
	HeaderRefresh
	HeaderRetryAfter
	HeaderSecWebSocketAccept
	HeaderSecWebSocketProtocol
	HeaderSecWebSocketVersion
	HeaderServer
	HeaderStrictTransportSecurity
	HeaderTrailer
	HeaderTransferEncoding
	HeaderUpgrade
	HeaderVary
	HeaderVia
	HeaderXContentTypeOptions
	HeaderXFrameOptions
	HeaderWWWAuthenticate

	stdHeaderCount
)

var stdHeaderNames = [stdHeaderCount]string{
	HeaderAcceptRanges:                    "Accept-Ranges",
	HeaderAccessControlAllowCredentials:   "Access-Control-Allow-Credentials",
	HeaderAccessControlAllowHeaders:       "Access-Control-Allow-Headers",
	HeaderAccessControlAllowMethods:       "Access-Control-Allow-Methods",
	HeaderAccessControlAllowOrigin:        "Access-Control-Allow-Origin",
	HeaderAccessControlExposeHeaders:      "Access-Control-Expose-Headers",
	HeaderAccessControlMaxAge:             "Access-Control-Max-Age",
	HeaderAge:                             "Age",
	HeaderAllow:                           "Allow",
	HeaderAltSvc:                          "Alt-Svc",
	HeaderCacheControl:                    "Cache-Control",
	HeaderCacheStatus:                     "Cache-Status",
	HeaderCDNCacheControl:                 "CDN-Cache-Control",
	HeaderConnection:                      "Connection",
	HeaderContentDisposition:              "Content-Disposition",
	HeaderContentEncoding:                 "Content-Encoding",
	HeaderContentLanguage:                 "Content-Language",
	HeaderContentLength:                   "Content-Length",
	HeaderContentLocation:                 "Content-Location",
	HeaderContentRange:                    "Content-Range",
	HeaderContentSecurityPolicy:           "Content-Security-Policy",
	HeaderContentSecurityPolicyReportOnly: "Content-Security-Policy-Report-Only",
	HeaderContentType:                     "Content-Type",
	HeaderDate:                            "Date",
	HeaderETag:                            "ETag",
	HeaderExpires:                         "Expires",
	HeaderLink:                            "Link",
	HeaderLocation:                        "Location",
	HeaderProxyAuthenticate:               "Proxy-Authenticate",
	HeaderReferrerPolicy:                  "Referrer-Policy",
	HeaderRefresh:                         "Refresh",
	HeaderRetryAfter:                      "Retry-After",
	HeaderSecWebSocketAccept:              "Sec-WebSocket-Accept",
	HeaderSecWebSocketProtocol:            "Sec-WebSocket-Protocol",
	HeaderSecWebSocketVersion:             "Sec-WebSocket-Version",
	HeaderServer:                          "Server",
	HeaderStrictTransportSecurity:         "Strict-Transport-Security",
	HeaderTrailer:                         "Trailer",
	HeaderTransferEncoding:                "Transfer-Encoding",
	HeaderUpgrade:                         "Upgrade",
	HeaderVary:                            "Vary",
	HeaderVia:                             "Via",
	HeaderXContentTypeOptions:             "X-Content-Type-Options",
	HeaderXFrameOptions:                   "X-Frame-Options",
	HeaderWWWAuthenticate:                 "WWW-Authenticate",
}

// String returns the canonical wire name of h.
func (h StdHeader) String() string {
	if h < 0 || h >= stdHeaderCount {
		return ""
	}
	return stdHeaderNames[h]
}

const setCookieName = "Set-Cookie"

var stdHeaderLookup = func() map[string]StdHeader {
	m := make(map[string]StdHeader, stdHeaderCount)
	for h, name := range stdHeaderNames {
		m[asciiLower(name)] = StdHeader(h)
	}
	return m
}()

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// LookupStdHeader resolves a wire header name to its StdHeader slot.
// The lookup is case-insensitive and allocation-free: the compiler
// elides the string conversion in `m[string(lowered)]` because lowered
// never escapes past the map index expression.
func LookupStdHeader(name []byte) (StdHeader, bool) {
	if len(name) > 64 {
		return 0, false
	}
	var buf [64]byte
	for i, c := range name {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		buf[i] = c
	}
	h, ok := stdHeaderLookup[string(buf[:len(name)])]
	return h, ok
}

// headerValue is either a zero-copy Slice borrowed from a Request's
// metadata buffer, or an owned string built by response-side code
// (e.g. a formatted Content-Length or Date). HeaderTable's setters
// store owned strings; request headers are kept in the Request's own
// BoundedList rather than in a HeaderTable.
type headerValue struct {
	slice   Slice
	owned   string
	isOwned bool
	isSet   bool
}

func sliceValue(s Slice) headerValue  { return headerValue{slice: s, isSet: true} }
func ownedValue(s string) headerValue { return headerValue{owned: s, isOwned: true, isSet: true} }

func (v headerValue) size() int {
	if v.isOwned {
		return len(v.owned)
	}
	return v.slice.Len()
}

func (v headerValue) String() string {
	if v.isOwned {
		return v.owned
	}
	return v.slice.String()
}

// HeaderTable is the Response's header container (a Request keeps its
// parsed headers in a BoundedList instead).
// It gives each of the 45 well-known headers an indexed slot (no hash,
// no allocation for the common case), spills anything else into a
// small ordered map, and keeps Set-Cookie as its own ordered list since
// it is the one header that legitimately repeats on the wire. `size` is
// maintained incrementally by every mutating method so a writer can
// reserve the exact serialized length once instead of growing a buffer
// as it goes.
type HeaderTable struct {
	standard    [stdHeaderCount]headerValue
	custom      map[string]headerValue
	customOrder []string
	setCookie   []string
	size        int
}

// NewHeaderTable returns an empty table ready for use.
func NewHeaderTable() *HeaderTable {
	return &HeaderTable{}
}

func lineSize(nameLen int, v headerValue) int {
	return nameLen + len(": ") + v.size() + len("\r\n")
}

// Set inserts or overwrites the value at h's slot.
func (t *HeaderTable) Set(h StdHeader, v headerValue) {
	old := t.standard[h]
	if old.isSet {
		t.size -= lineSize(len(h.String()), old)
	}
	t.standard[h] = v
	t.size += lineSize(len(h.String()), v)
}

// SetString is a convenience wrapper for the common owned-string case.
func (t *HeaderTable) SetString(h StdHeader, value string) {
	t.Set(h, ownedValue(value))
}

// Get returns the value at h's slot.
func (t *HeaderTable) Get(h StdHeader) (string, bool) {
	v := t.standard[h]
	if !v.isSet {
		return "", false
	}
	return v.String(), true
}

// Append joins value onto h's existing slot with a ", " separator, or
// inserts it fresh if the slot is empty. Matches the comma-join rule
// for repeated non-Set-Cookie headers.
func (t *HeaderTable) Append(h StdHeader, value string) {
	old := t.standard[h]
	if !old.isSet {
		t.Set(h, ownedValue(value))
		return
	}
	joined := old.String() + ", " + value
	t.size -= lineSize(len(h.String()), old)
	t.standard[h] = ownedValue(joined)
	t.size += lineSize(len(h.String()), t.standard[h])
}

// Remove clears h's slot.
func (t *HeaderTable) Remove(h StdHeader) {
	old := t.standard[h]
	if !old.isSet {
		return
	}
	t.size -= lineSize(len(h.String()), old)
	t.standard[h] = headerValue{}
}

// SetCustom inserts or overwrites a non-standard header by name.
func (t *HeaderTable) SetCustom(name string, v headerValue) {
	if t.custom == nil {
		t.custom = make(map[string]headerValue, 4)
	}
	if old, ok := t.custom[name]; ok {
		t.size -= lineSize(len(name), old)
	} else {
		t.customOrder = append(t.customOrder, name)
	}
	t.custom[name] = v
	t.size += lineSize(len(name), v)
}

// SetCustomString is a convenience wrapper for owned-string values.
func (t *HeaderTable) SetCustomString(name, value string) {
	t.SetCustom(name, ownedValue(value))
}

// GetCustom returns a non-standard header's value by name.
func (t *HeaderTable) GetCustom(name string) (string, bool) {
	v, ok := t.custom[name]
	if !ok {
		return "", false
	}
	return v.String(), true
}

// AppendCustom is Append for non-standard headers.
func (t *HeaderTable) AppendCustom(name, value string) {
	old, ok := t.custom[name]
	if !ok {
		t.SetCustom(name, ownedValue(value))
		return
	}
	joined := old.String() + ", " + value
	t.size -= lineSize(len(name), old)
	t.custom[name] = ownedValue(joined)
	t.size += lineSize(len(name), t.custom[name])
}

// RemoveCustom deletes a non-standard header by name.
func (t *HeaderTable) RemoveCustom(name string) {
	old, ok := t.custom[name]
	if !ok {
		return
	}
	t.size -= lineSize(len(name), old)
	delete(t.custom, name)
	for i, n := range t.customOrder {
		if n == name {
			t.customOrder = append(t.customOrder[:i], t.customOrder[i+1:]...)
			break
		}
	}
}

// AddSetCookie appends another Set-Cookie directive. Unlike every other
// header, repeated Set-Cookie values are never comma-joined: each call
// produces its own header line on the wire.
func (t *HeaderTable) AddSetCookie(directive string) {
	t.setCookie = append(t.setCookie, directive)
	t.size += len(setCookieName) + len(": ") + len(directive) + len("\r\n")
}

// SetCookies returns the accumulated Set-Cookie directives in the order
// they were added.
func (t *HeaderTable) SetCookies() []string {
	return t.setCookie
}

// Size reports the exact number of bytes Encode will write, excluding
// the request/status line and the blank line that terminates the
// header block.
func (t *HeaderTable) Size() int {
	return t.size
}

// Encode serializes every set header into buf as "Name: value\r\n"
// lines: standard slots in enum order, then custom headers in
// insertion order, then Set-Cookie lines last. It does not write the
// blank line terminating the header block; callers append that once
// after also writing the status/request line.
func (t *HeaderTable) Encode(buf *bytebufferpool.ByteBuffer) {
	for h := StdHeader(0); h < stdHeaderCount; h++ {
		v := t.standard[h]
		if !v.isSet {
			continue
		}
		buf.WriteString(h.String())
		buf.Write(colonSpace)
		buf.WriteString(v.String())
		buf.Write(crlf)
	}
	for _, name := range t.customOrder {
		v, ok := t.custom[name]
		if !ok {
			continue
		}
		buf.WriteString(name)
		buf.Write(colonSpace)
		buf.WriteString(v.String())
		buf.Write(crlf)
	}
	for _, directive := range t.setCookie {
		buf.WriteString(setCookieName)
		buf.Write(colonSpace)
		buf.WriteString(directive)
		buf.Write(crlf)
	}
}

// Reset clears the table for reuse from a sync.Pool, matching the
// teacher's approach of resetting pooled pipeline objects rather than
// reallocating them per request.
func (t *HeaderTable) Reset() {
	for i := range t.standard {
		t.standard[i] = headerValue{}
	}
	for k := range t.custom {
		delete(t.custom, k)
	}
	t.customOrder = t.customOrder[:0]
	t.setCookie = t.setCookie[:0]
	t.size = 0
}

// headerTablePool recycles HeaderTables across requests, the same way
// the teacher's server.go recycles its headerPool/parserHeadersPool.
var headerTablePool = sync.Pool{
	New: func() interface{} { return NewHeaderTable() },
}

func getHeaderTable() *HeaderTable {
	return headerTablePool.Get().(*HeaderTable)
}

func releaseHeaderTable(t *HeaderTable) {
	t.Reset()
	headerTablePool.Put(t)
}
