package fulcrum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookieBuilderBasic(t *testing.T) {
	got := SetCookie("test", "value", nil)
	assert.Equal(t, "test=value", got)
}

func TestCookieBuilderDirectives(t *testing.T) {
	got := SetCookie("test", "value", func(b *CookieBuilder) *CookieBuilder {
		return b.Path("/path").Domain("example.com").MaxAge(3600).Secure().HTTPOnly().SameSiteStrict()
	})
	assert.Equal(t, "test=value; Path=/path; Domain=example.com; Max-Age=3600; Secure; HttpOnly; SameSite=Strict", got)
}

func TestCookieBuilderExpires(t *testing.T) {
	got := SetCookie("test", "value", func(b *CookieBuilder) *CookieBuilder {
		return b.Expires(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	})
	assert.Equal(t, "test=value; Expires=Sun, 01 Jan 2023 00:00:00 GMT", got)
}

func TestCookieBuilderSessionOnlySuppressesExpiry(t *testing.T) {
	got := SetCookie("test", "value", func(b *CookieBuilder) *CookieBuilder {
		return b.MaxAge(3600).Expires(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)).SessionOnly()
	})
	assert.Equal(t, "test=value", got)
}

func TestCookieBuilderPartitioned(t *testing.T) {
	got := SetCookie("test", "value", func(b *CookieBuilder) *CookieBuilder {
		return b.Partitioned()
	})
	assert.Equal(t, "test=value; Partitioned", got)
}

func TestCookieBuilderPercentEncodesValue(t *testing.T) {
	got := SetCookie("test", "a b/c", nil)
	assert.Equal(t, "test=a+b%2Fc", got)
}

func TestParseCookies(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		key      string
		expected string
		found    bool
	}{
		{"basic", "test=value", "test", "value", true},
		{"multiple", "test1=value1; test2=value2; test3=value3", "test2", "value2", true},
		{"not found", "test1=value1; test2=value2", "test3", "", false},
		{"empty header", "", "test", "", false},
		{"malformed segment skipped", "test1=value1; test2; test3=value3", "test2", "", false},
		{"empty name skipped", "test1=value1; =value2; test3=value3", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cookies := parseCookies(tt.header)
			v, ok := cookies[tt.key]
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}
