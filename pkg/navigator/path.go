package navigator

import (
	"strconv"
	"strings"
)

// DefaultSeparator delimits hierarchy levels in a path string.
const DefaultSeparator = "."

// Parse converts a raw path string into its ordered step sequence.
// Segments are split on sep; each segment contributes one Key step
// followed by zero or more bracketed Index steps, so "a.b[0].c" parses
// to [Key(a), Key(b), Index(0), Key(c)].
//
// Empty segments (including an empty key before a bracket) are kept as
// empty Key steps: they are only invalid at point of access. Bracket
// syntax errors and non-integer indexes fail with ErrMalformedPath.
func Parse(path, sep string) ([]Step, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	var steps []Step
	for _, segment := range strings.Split(path, sep) {
		parsed, err := parseSegment(segment, path)
		if err != nil {
			return nil, err
		}
		steps = append(steps, parsed...)
	}
	return steps, nil
}

// parseSegment expands one separator-delimited segment like "b[0][1]"
// into Key(b), Index(0), Index(1).
func parseSegment(segment, path string) ([]Step, error) {
	pieces := strings.Split(segment, "[")
	steps := []Step{Key{Name: pieces[0]}}
	for _, piece := range pieces[1:] {
		body, closed := strings.CutSuffix(piece, "]")
		if !closed {
			return nil, NewResolveError(ErrMalformedPath, segment, path,
				"you must use matched brackets to access sequence items")
		}
		n, err := strconv.Atoi(body)
		if err != nil {
			// A non-empty body with no stray ']' means the author meant
			// an index but typed a non-integer; anything else looks like
			// forgotten or mangled brackets.
			if body != "" && !strings.Contains(body, "]") {
				return nil, NewResolveError(ErrMalformedPath, segment, path,
					"sequence items can only be accessed with integer indexes")
			}
			return nil, NewResolveError(ErrMalformedPath, segment, path,
				"you must use matched brackets to access sequence items")
		}
		if n < 0 {
			return nil, NewResolveError(ErrMalformedPath, segment, path,
				"sequence indexes must be non-negative")
		}
		steps = append(steps, Index{I: n})
	}
	return steps, nil
}
