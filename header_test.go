package fulcrum

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/bytebufferpool"
)

func TestHeaderTableSetGet(t *testing.T) {
	h := NewHeaderTable()

	_, ok := h.Get(HeaderContentType)
	require.False(t, ok)

	h.SetString(HeaderContentType, "application/json")
	v, ok := h.Get(HeaderContentType)
	require.True(t, ok)
	require.Equal(t, "application/json", v)

	h.SetString(HeaderContentType, "text/html")
	v, _ = h.Get(HeaderContentType)
	require.Equal(t, "text/html", v)
}

func TestHeaderTableAppendJoinsWithComma(t *testing.T) {
	h := NewHeaderTable()
	h.Append(HeaderVary, "Accept")
	h.Append(HeaderVary, "Accept-Encoding")

	v, ok := h.Get(HeaderVary)
	require.True(t, ok)
	require.Equal(t, "Accept, Accept-Encoding", v)
}

func TestHeaderTableRemove(t *testing.T) {
	h := NewHeaderTable()
	h.SetString(HeaderContentType, "application/json")
	h.Remove(HeaderContentType)

	_, ok := h.Get(HeaderContentType)
	require.False(t, ok)
	require.Equal(t, 0, h.Size())
}

func TestHeaderTableCustomHeaders(t *testing.T) {
	h := NewHeaderTable()
	h.SetCustomString("X-Request-ID", "abc-123")

	v, ok := h.GetCustom("X-Request-ID")
	require.True(t, ok)
	require.Equal(t, "abc-123", v)

	h.AppendCustom("X-Request-ID", "def-456")
	v, _ = h.GetCustom("X-Request-ID")
	require.Equal(t, "abc-123, def-456", v)

	h.RemoveCustom("X-Request-ID")
	_, ok = h.GetCustom("X-Request-ID")
	require.False(t, ok)
}

func TestHeaderTableSetCookieNeverJoins(t *testing.T) {
	h := NewHeaderTable()
	h.AddSetCookie("id=42; Path=/")
	h.AddSetCookie("name=John; Path=/where")

	cookies := h.SetCookies()
	require.Len(t, cookies, 2)
	require.Equal(t, "id=42; Path=/", cookies[0])
	require.Equal(t, "name=John; Path=/where", cookies[1])
}

func TestHeaderTableSizeMatchesEncode(t *testing.T) {
	h := NewHeaderTable()
	h.SetString(HeaderContentType, "application/json")
	h.SetString(HeaderContentLength, "13")
	h.SetCustomString("X-Request-ID", "abc-123")
	h.AddSetCookie("id=42; Path=/")

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	h.Encode(buf)

	require.Equal(t, h.Size(), buf.Len())
}

func TestHeaderTableEncodeOrder(t *testing.T) {
	h := NewHeaderTable()
	h.SetString(HeaderContentType, "application/json")
	h.SetString(HeaderAllow, "GET, POST")
	h.SetCustomString("X-First", "1")
	h.SetCustomString("X-Second", "2")
	h.AddSetCookie("a=1")

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	h.Encode(buf)

	got := buf.String()
	require.Contains(t, got, "Allow: GET, POST\r\n")
	require.Contains(t, got, "Content-Type: application/json\r\n")
	require.Contains(t, got, "X-First: 1\r\nX-Second: 2\r\n")
	require.Contains(t, got, "Set-Cookie: a=1\r\n")
}

func TestHeaderTableReset(t *testing.T) {
	h := NewHeaderTable()
	h.SetString(HeaderContentType, "application/json")
	h.SetCustomString("X-Request-ID", "abc-123")
	h.AddSetCookie("a=1")

	h.Reset()

	require.Equal(t, 0, h.Size())
	_, ok := h.Get(HeaderContentType)
	require.False(t, ok)
	_, ok = h.GetCustom("X-Request-ID")
	require.False(t, ok)
	require.Empty(t, h.SetCookies())
}

func TestLookupStdHeader(t *testing.T) {
	h, ok := LookupStdHeader([]byte("content-type"))
	require.True(t, ok)
	require.Equal(t, HeaderContentType, h)

	h, ok = LookupStdHeader([]byte("CONTENT-TYPE"))
	require.True(t, ok)
	require.Equal(t, HeaderContentType, h)

	_, ok = LookupStdHeader([]byte("X-Not-Standard"))
	require.False(t, ok)
}
