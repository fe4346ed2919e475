// Package navigator resolves delimited string paths like "a.b[0].c"
// against nested trees built from map[string]any, []any, and scalar
// leaves. It parses a path into typed access steps and walks a tree
// with them, returning either the addressed value, a (parent, final
// step) pair for mutation, or a failure naming the exact segment that
// could not be resolved.
//
// The navigator borrows the tree for the duration of a call and keeps
// no state between calls; concurrency guarantees are whatever the
// caller's tree already provides.
package navigator

import (
	"fmt"

	"github.com/go-logr/logr"
)

// traceLogger receives V(1) traversal traces. Discarded by default.
var traceLogger = logr.Discard()

// SetTraceLogger routes traversal traces to lgr and returns the
// previous logger. Useful when embedding the navigator in a larger
// application that already carries a logr.Logger.
func SetTraceLogger(lgr logr.Logger) logr.Logger {
	prev := traceLogger
	traceLogger = lgr
	return prev
}

// Resolve applies each step to root in order and returns the value at
// the path's end. Traversal is fail-fast: the first step that cannot
// be applied reports a failure naming the offending segment and the
// original path, and nothing past it is attempted.
func Resolve(root any, steps []Step, path string) (any, error) {
	cur := root
	for _, s := range steps {
		next, err := Fetch(cur, s, path)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	traceLogger.V(1).Info("resolved", "path", path, "steps", len(steps))
	return cur, nil
}

// ResolveParent applies all but the final step and returns the node
// reached plus the final step, so the caller can perform its own
// get/set/delete against that parent.
func ResolveParent(root any, steps []Step, path string) (any, Step, error) {
	if len(steps) == 0 {
		return nil, nil, NewResolveError(ErrMalformedPath, path, path, "path has no steps")
	}
	parent, err := Resolve(root, steps[:len(steps)-1], path)
	if err != nil {
		return nil, nil, err
	}
	return parent, steps[len(steps)-1], nil
}

// ResolveParentCreating is ResolveParent for writers that must build
// missing structure on the way down: a Key step that finds no entry in
// a keyed container creates an empty mapping there and descends into
// it. Ordered containers are never created or extended, so an Index
// step out of bounds stays a hard failure at any position.
func ResolveParentCreating(root any, steps []Step, path string) (any, Step, error) {
	if len(steps) == 0 {
		return nil, nil, NewResolveError(ErrMalformedPath, path, path, "path has no steps")
	}
	parent := root
	for _, s := range steps[:len(steps)-1] {
		if k, ok := s.(Key); ok {
			if m, isMap := parent.(map[string]any); isMap {
				child, exists := m[k.Name]
				if !exists {
					child = map[string]any{}
					m[k.Name] = child
					traceLogger.V(1).Info("created intermediate mapping", "path", path, "key", k.Name)
				}
				parent = child
				continue
			}
		}
		next, err := Fetch(parent, s, path)
		if err != nil {
			return nil, nil, err
		}
		parent = next
	}
	return parent, steps[len(steps)-1], nil
}

// Fetch applies a single step to a node.
func Fetch(node any, step Step, path string) (any, error) {
	switch s := step.(type) {
	case Key:
		m, ok := node.(map[string]any)
		if !ok {
			return nil, NewResolveError(ErrTypeMismatch, s.Name, path,
				fmt.Sprintf("%s is not addressable by key", kindOf(node)))
		}
		v, ok := m[s.Name]
		if !ok {
			return nil, NewResolveError(ErrMissingKey, s.Name, path, "key does not exist")
		}
		return v, nil
	case Index:
		seq, ok := node.([]any)
		if !ok {
			return nil, NewResolveError(ErrTypeMismatch, s.String(), path,
				fmt.Sprintf("%s is not addressable by index", kindOf(node)))
		}
		if s.I < 0 || s.I >= len(seq) {
			return nil, NewResolveError(ErrIndexOutOfRange, s.String(), path,
				fmt.Sprintf("sequence has %d elements", len(seq)))
		}
		return seq[s.I], nil
	default:
		return nil, NewResolveError(ErrTypeMismatch, fmt.Sprintf("%v", step), path, "unknown step kind")
	}
}

// Store writes value into parent at step. A Key step may create the
// entry in a keyed container; an Index step must land inside the
// bounds of the ordered container, which is mutated in place.
func Store(parent any, step Step, value any, path string) error {
	switch s := step.(type) {
	case Key:
		m, ok := parent.(map[string]any)
		if !ok {
			return NewResolveError(ErrTypeMismatch, s.Name, path,
				fmt.Sprintf("%s is not addressable by key", kindOf(parent)))
		}
		m[s.Name] = value
		return nil
	case Index:
		seq, ok := parent.([]any)
		if !ok {
			return NewResolveError(ErrTypeMismatch, s.String(), path,
				fmt.Sprintf("%s is not addressable by index", kindOf(parent)))
		}
		if s.I < 0 || s.I >= len(seq) {
			return NewResolveError(ErrIndexOutOfRange, s.String(), path,
				fmt.Sprintf("sequence has %d elements", len(seq)))
		}
		seq[s.I] = value
		return nil
	default:
		return NewResolveError(ErrTypeMismatch, fmt.Sprintf("%v", step), path, "unknown step kind")
	}
}

// Remove deletes the value addressed by steps and returns it. Deleting
// a sequence element splices the sequence and writes the shortened
// copy back through the container holding it; the root itself can
// therefore not be a sequence that Remove is asked to shrink.
func Remove(root any, steps []Step, path string) (any, error) {
	if len(steps) == 0 {
		return nil, NewResolveError(ErrMalformedPath, path, path, "path has no steps")
	}
	var holder any
	var holderStep Step
	parent := root
	for _, s := range steps[:len(steps)-1] {
		next, err := Fetch(parent, s, path)
		if err != nil {
			return nil, err
		}
		holder, holderStep = parent, s
		parent = next
	}

	switch s := steps[len(steps)-1].(type) {
	case Key:
		m, ok := parent.(map[string]any)
		if !ok {
			return nil, NewResolveError(ErrTypeMismatch, s.Name, path,
				fmt.Sprintf("%s is not addressable by key", kindOf(parent)))
		}
		v, ok := m[s.Name]
		if !ok {
			return nil, NewResolveError(ErrMissingKey, s.Name, path, "key does not exist")
		}
		delete(m, s.Name)
		traceLogger.V(1).Info("removed", "path", path, "key", s.Name)
		return v, nil
	case Index:
		seq, ok := parent.([]any)
		if !ok {
			return nil, NewResolveError(ErrTypeMismatch, s.String(), path,
				fmt.Sprintf("%s is not addressable by index", kindOf(parent)))
		}
		if s.I < 0 || s.I >= len(seq) {
			return nil, NewResolveError(ErrIndexOutOfRange, s.String(), path,
				fmt.Sprintf("sequence has %d elements", len(seq)))
		}
		if holder == nil {
			return nil, NewResolveError(ErrTypeMismatch, s.String(), path,
				"cannot shrink a root-level sequence")
		}
		v := seq[s.I]
		shorter := append(seq[:s.I:s.I], seq[s.I+1:]...)
		if err := Store(holder, holderStep, shorter, path); err != nil {
			return nil, err
		}
		traceLogger.V(1).Info("removed", "path", path, "index", s.I)
		return v, nil
	default:
		return nil, NewResolveError(ErrTypeMismatch, fmt.Sprintf("%v", steps[len(steps)-1]), path, "unknown step kind")
	}
}
