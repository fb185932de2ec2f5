package fulcrum

import "strings"

// PatternKind is the closed set of route segment kinds a Pattern can be.
// Precedence when several patterns could match the same segment is
// always Static > Param > CatchAll, enforced by router.go's insertion
// and search order rather than by this type itself.
type PatternKind uint8

const (
	PatternStatic PatternKind = iota
	PatternParam
	PatternCatchAll
)

// Pattern is one '/'-delimited segment of a registered route.
type Pattern struct {
	kind  PatternKind
	text  string // literal text for Static, parameter name for Param/CatchAll
}

// parseSegments splits a route path like "/users/:id/posts/*rest" into
// its Pattern segments. Leading/trailing slashes are insignificant; an
// empty path yields zero segments (the root route).
func parseSegments(path string) []Pattern {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	segments := make([]Pattern, 0, len(parts))
	for _, part := range parts {
		switch {
		case strings.HasPrefix(part, ":"):
			segments = append(segments, Pattern{kind: PatternParam, text: part[1:]})
		case strings.HasPrefix(part, "*"):
			segments = append(segments, Pattern{kind: PatternCatchAll, text: part[1:]})
		default:
			segments = append(segments, Pattern{kind: PatternStatic, text: part})
		}
	}
	return segments
}

// Kind reports which member of the closed set p is.
func (p Pattern) Kind() PatternKind { return p.kind }

// Text returns the literal (Static) or parameter name (Param/CatchAll).
func (p Pattern) Text() string { return p.text }
