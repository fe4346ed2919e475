package navigator

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by this package matches exactly
// one of these via errors.Is.
var (
	// ErrMalformedPath reports invalid bracket syntax or a non-integer
	// index literal. Raised by Parse, never by the traversal functions.
	ErrMalformedPath = errors.New("malformed path")

	// ErrMissingKey reports a Key step whose name is absent from the
	// keyed container reached at that point.
	ErrMissingKey = errors.New("missing key")

	// ErrIndexOutOfRange reports an Index step outside the bounds of
	// the ordered container reached at that point.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTypeMismatch reports a step whose access kind (key vs index)
	// is incompatible with the node it was applied to.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ResolveError describes why a path could not be resolved: the failure
// kind, the offending segment, and the original full path. It carries
// enough to build the message without re-parsing the path.
type ResolveError struct {
	Kind    error  // one of the Err* sentinels above
	Segment string // offending key, index, or raw segment
	Path    string // original full path string
	detail  string
}

func (e *ResolveError) Error() string {
	if errors.Is(e.Kind, ErrMalformedPath) {
		return fmt.Sprintf("malformed path %q: segment %q: %s", e.Path, e.Segment, e.detail)
	}
	return fmt.Sprintf("cannot access %q in path %q: %s", e.Segment, e.Path, e.detail)
}

func (e *ResolveError) Unwrap() error { return e.Kind }

// NewResolveError builds a failure of the given kind. All failures in
// this package, and any the facade layer adds, go through this single
// constructor so messages stay consistent and the taxonomy enumerable.
func NewResolveError(kind error, segment, path, detail string) *ResolveError {
	return &ResolveError{Kind: kind, Segment: segment, Path: path, detail: detail}
}

// kindOf names a node's container kind for error messages.
func kindOf(node any) string {
	switch node.(type) {
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("scalar (%T)", node)
	}
}
