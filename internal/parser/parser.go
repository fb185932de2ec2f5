// Package parser turns raw connection bytes into a Result of
// offset/length spans (which fulcrum then turns into a Request's
// Slices) without copying the request line or header block: it locates the
// header/body boundary with wildcat's tokenizer (the same library the
// teacher's internal/httpparser.Codec drives) and then walks the
// metadata buffer itself to build Slice-based views, rather than the
// teacher's strings.Split(string(buf), "\r\n") approach, which
// allocates a new string and a new slice per line.
package parser

import (
	stderrors "errors"

	"github.com/evanphx/wildcat"
	"github.com/vektra/errors"
)

// ErrMalformedRequest marks a request line, header line, or version
// token that could not be tokenized at all.
var ErrMalformedRequest = stderrors.New("fulcrum/parser: malformed request")

// ErrIncomplete marks a buffer that does not yet hold a full request;
// the caller should read more bytes and retry.
var ErrIncomplete = stderrors.New("fulcrum/parser: incomplete request")

// ErrUnsupportedVersion marks a request line whose HTTP version is not
// HTTP/1.1, surfaced by the server as HTTPVersionNotSupported.
var ErrUnsupportedVersion = stderrors.New("fulcrum/parser: unsupported HTTP version")

// ErrTooManyHeaders marks a request whose header count exceeds the
// caller-supplied capacity, surfaced as BadRequest.
var ErrTooManyHeaders = stderrors.New("fulcrum/parser: too many headers")

// Kind classifies a *ParseError for status-code mapping, independent of
// whatever stack-trace wrapper decorates the underlying sentinel.
type Kind int

const (
	// KindMalformed means the request line or a header line could not
	// be tokenized at all; callers map this to BadRequest.
	KindMalformed Kind = iota
	// KindUnsupportedVersion means the request line's HTTP version
	// token was not HTTP/1.1; callers map this to
	// HTTPVersionNotSupported.
	KindUnsupportedVersion
	// KindTooManyHeaders means the header count exceeded the caller's
	// capacity; callers map this to BadRequest.
	KindTooManyHeaders
)

// ParseError pairs a Kind with the underlying sentinel (optionally
// decorated with a vektra/errors stack trace) so a caller can branch on
// Kind directly instead of matching the wrapped error by identity --
// vektra/errors.Wrap's return value does not implement Unwrap, so
// errors.Is/== against the bare sentinel would miss a wrapped one.
type ParseError struct {
	Kind Kind
	err  error
}

func (e *ParseError) Error() string { return e.err.Error() }

// Unwrap exposes the decorated sentinel to errors.Is/As for callers
// that want to match the specific cause rather than Kind.
func (e *ParseError) Unwrap() error { return e.err }

// Header is one parsed (name, value) span, both as (offset, length)
// pairs into the buffer the caller parsed. Callers rebuild Slices from
// these against their own buffer type instead of this package
// depending on fulcrum.Slice, avoiding an import cycle.
type Header struct {
	NameOffset, NameLen   int
	ValueOffset, ValueLen int
}

// Result is everything Parse extracts from one request's metadata
// block: the method and path as (offset, length) spans, the headers,
// and HeaderEnd, the offset in buf where the header block's terminal
// CRLFCRLF ends and the body (if any) begins.
type Result struct {
	MethodOffset, MethodLen int
	PathOffset, PathLen     int

	Headers []Header

	HeaderEnd int
}

// Parser wraps a pooled wildcat.HTTPParser to locate the header/body
// boundary, then tokenizes the request line and header lines itself
// into zero-copy offset/length spans. Not safe for concurrent use;
// callers pool one Parser per in-flight request the way the teacher
// pools *wildcat.HTTPParser in internal/httpparser.parserPool.
type Parser struct {
	wc *wildcat.HTTPParser
}

// New returns a Parser ready to use.
func New() *Parser {
	return &Parser{wc: wildcat.NewHTTPParser()}
}

// Reset discards any state from a previous Parse so the Parser can be
// reused for the next request on the same connection.
func (p *Parser) Reset() {
	p.wc = wildcat.NewHTTPParser()
}

// Parse tokenizes buf (starting at the first byte of a request line)
// into a Result. maxHeaders bounds how many header lines will be
// recorded; exceeding it returns ErrTooManyHeaders.
func (p *Parser) Parse(buf []byte, maxHeaders int) (Result, error) {
	var res Result

	headerEnd, err := p.wc.Parse(buf)
	if err != nil {
		// ErrIncomplete is the routine "read more and retry" signal,
		// not an exceptional error, so it stays a bare sentinel:
		// callers compare it by identity (err == ErrIncomplete) on
		// every read, and vektra/errors.Wrap's return value doesn't
		// implement Unwrap, which would break that comparison.
		return res, ErrIncomplete
	}
	res.HeaderEnd = headerEnd

	block := buf[:headerEnd]

	lineStart := 0
	lineNo := 0
	for i := 0; i <= len(block); i++ {
		if i < len(block) && block[i] != '\n' {
			continue
		}
		lineEnd := i
		if lineEnd > lineStart && block[lineEnd-1] == '\r' {
			lineEnd--
		}
		line := block[lineStart:lineEnd]

		if lineNo == 0 {
			if err := parseRequestLine(line, lineStart, &res); err != nil {
				return res, err
			}
		} else if len(line) > 0 {
			h, ok := parseHeaderLine(line, lineStart)
			if !ok {
				return res, &ParseError{Kind: KindMalformed, err: errors.Wrap(ErrMalformedRequest, 0)}
			}
			if len(res.Headers) >= maxHeaders {
				return res, &ParseError{Kind: KindTooManyHeaders, err: errors.Wrap(ErrTooManyHeaders, 0)}
			}
			res.Headers = append(res.Headers, h)
		}

		lineStart = i + 1
		lineNo++
	}

	if lineNo == 0 {
		return res, &ParseError{Kind: KindMalformed, err: errors.Wrap(ErrMalformedRequest, 0)}
	}
	return res, nil
}

func parseRequestLine(line []byte, base int, res *Result) error {
	sp1 := indexByte(line, ' ', 0)
	if sp1 < 0 {
		return &ParseError{Kind: KindMalformed, err: errors.Wrap(ErrMalformedRequest, 0)}
	}
	sp2 := indexByte(line, ' ', sp1+1)
	if sp2 < 0 {
		return &ParseError{Kind: KindMalformed, err: errors.Wrap(ErrMalformedRequest, 0)}
	}

	res.MethodOffset, res.MethodLen = base, sp1
	res.PathOffset, res.PathLen = base+sp1+1, sp2-sp1-1

	version := line[sp2+1:]
	if !isHTTP11(version) {
		return &ParseError{Kind: KindUnsupportedVersion, err: errors.Wrap(ErrUnsupportedVersion, 0)}
	}
	return nil
}

func parseHeaderLine(line []byte, base int) (Header, bool) {
	colon := indexByte(line, ':', 0)
	if colon <= 0 {
		return Header{}, false
	}
	nameEnd := colon
	valStart := colon + 1
	for valStart < len(line) && line[valStart] == ' ' {
		valStart++
	}
	valEnd := len(line)
	for valEnd > valStart && line[valEnd-1] == ' ' {
		valEnd--
	}
	return Header{
		NameOffset:  base,
		NameLen:     nameEnd,
		ValueOffset: base + valStart,
		ValueLen:    valEnd - valStart,
	}, true
}

func isHTTP11(version []byte) bool {
	const want = "HTTP/1.1"
	if len(version) != len(want) {
		return false
	}
	for i := 0; i < len(want); i++ {
		if version[i] != want[i] {
			return false
		}
	}
	return true
}

func indexByte(b []byte, c byte, from int) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}
