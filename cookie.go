package fulcrum

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SameSite is the closed set of `SameSite` directive values a Set-Cookie
// builder can carry.
type SameSite string

const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
	SameSiteNone   SameSite = "None"
)

// CookieBuilder accumulates Set-Cookie directives for a single cookie,
// grounded on ohkami's SetCookieBuilder closure API
// (original_source/ohkami/src/response/headers.rs: `.SetCookie(name, value, |d| d.Path("/")...)`)
// adapted to Go's method-chaining idiom in place of Rust's consuming
// builder methods.
type CookieBuilder struct {
	name        string
	value       string
	path        string
	domain      string
	maxAge      int
	expires     time.Time
	secure      bool
	httpOnly    bool
	sameSite    SameSite
	partitioned bool
	sessionOnly bool
}

// NewCookieBuilder starts a directive chain for a Set-Cookie header with
// the given name and value. The value is percent-encoded when the
// cookie is serialized, so callers pass the raw value here.
func NewCookieBuilder(name, value string) *CookieBuilder {
	return &CookieBuilder{name: name, value: value}
}

func (b *CookieBuilder) Path(p string) *CookieBuilder       { b.path = p; return b }
func (b *CookieBuilder) Domain(d string) *CookieBuilder     { b.domain = d; return b }
func (b *CookieBuilder) MaxAge(seconds int) *CookieBuilder  { b.maxAge = seconds; return b }
func (b *CookieBuilder) Expires(t time.Time) *CookieBuilder { b.expires = t; return b }
func (b *CookieBuilder) Secure() *CookieBuilder             { b.secure = true; return b }
func (b *CookieBuilder) HTTPOnly() *CookieBuilder           { b.httpOnly = true; return b }
func (b *CookieBuilder) Partitioned() *CookieBuilder        { b.partitioned = true; return b }

// SessionOnly marks the cookie as session-scoped: Expires/Max-Age are
// omitted from the serialized directive even if previously set.
func (b *CookieBuilder) SessionOnly() *CookieBuilder { b.sessionOnly = true; return b }

func (b *CookieBuilder) SameSiteStrict() *CookieBuilder { b.sameSite = SameSiteStrict; return b }
func (b *CookieBuilder) SameSiteLax() *CookieBuilder    { b.sameSite = SameSiteLax; return b }
func (b *CookieBuilder) SameSiteNone() *CookieBuilder   { b.sameSite = SameSiteNone; return b }

// Build renders the accumulated directives as a single Set-Cookie
// header value, e.g. "id=42; Path=/; SameSite=Lax".
func (b *CookieBuilder) Build() string {
	var s strings.Builder
	s.WriteString(b.name)
	s.WriteByte('=')
	s.WriteString(url.QueryEscape(b.value))

	if b.path != "" {
		s.WriteString("; Path=")
		s.WriteString(b.path)
	}
	if b.domain != "" {
		s.WriteString("; Domain=")
		s.WriteString(b.domain)
	}
	if !b.sessionOnly {
		if !b.expires.IsZero() {
			s.WriteString("; Expires=")
			s.WriteString(b.expires.UTC().Format(http.TimeFormat))
		}
		if b.maxAge > 0 {
			s.WriteString("; Max-Age=")
			s.WriteString(strconv.Itoa(b.maxAge))
		}
	}
	if b.secure {
		s.WriteString("; Secure")
	}
	if b.httpOnly {
		s.WriteString("; HttpOnly")
	}
	if b.sameSite != "" {
		s.WriteString("; SameSite=")
		s.WriteString(string(b.sameSite))
	}
	if b.partitioned {
		s.WriteString("; Partitioned")
	}
	return s.String()
}

// SetCookie renders a Set-Cookie directive for name/value, applying
// directives from the given closure. Call HeaderTable.AddSetCookie with
// the result to attach it to a Response.
func SetCookie(name, value string, directives func(*CookieBuilder) *CookieBuilder) string {
	b := NewCookieBuilder(name, value)
	if directives != nil {
		b = directives(b)
	}
	return b.Build()
}

// parseCookies splits a request's Cookie header into name/value pairs.
// Values are percent-decoded to invert SetCookie's percent-encoding.
// Malformed or empty segments are skipped rather than rejected, since a
// client cookie jar is outside this server's control.
func parseCookies(cookieHeader string) map[string]string {
	cookies := make(map[string]string)
	for _, part := range strings.Split(cookieHeader, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			continue
		}
		value, err := url.QueryUnescape(kv[1])
		if err != nil {
			value = kv[1]
		}
		cookies[kv[0]] = value
	}
	return cookies
}
