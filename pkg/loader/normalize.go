package loader

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Normalize converts an arbitrary Go value into a navigable tree of
// map[string]any, []any, and scalars. Strings and byte slices are
// treated as serialized input and parsed; typed maps, typed slices,
// and structs are converted through a JSON round-trip so struct tags
// are honored. Numbers consequently come back as float64, the same
// shape a JSON-parsed tree has.
func Normalize(value any) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("input is nil")
	}

	switch v := value.(type) {
	case string:
		return Load(v)
	case []byte:
		return LoadBytes(v)
	case map[string]any:
		return normalizeTree(v)
	case []any:
		return normalizeTree(v)
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("input is nil")
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return rv.Interface(), nil
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return roundTrip(rv.Interface())
	default:
		return nil, fmt.Errorf("cannot build a tree from %s", rv.Kind())
	}
}

// NormalizeMap is Normalize restricted to values whose tree root is a
// keyed container.
func NormalizeMap(value any) (map[string]any, error) {
	tree, err := Normalize(value)
	if err != nil {
		return nil, err
	}
	m, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("root is %T, not a mapping", tree)
	}
	return m, nil
}

// normalizeTree walks an already-generic tree and round-trips any
// nested value that is not generic yet (e.g. a []string leaf inside a
// map[string]any).
func normalizeTree(node any) (any, error) {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			n, err := normalizeLeaf(val)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			n, err := normalizeLeaf(val)
			if err != nil {
				return nil, fmt.Errorf("element [%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	default:
		return node, nil
	}
}

func normalizeLeaf(node any) (any, error) {
	switch node.(type) {
	case nil:
		return nil, nil
	case map[string]any, []any:
		return normalizeTree(node)
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string:
		return node, nil
	}

	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return roundTrip(node)
	default:
		return node, nil
	}
}

// roundTrip forces a value into JSON-compatible generic containers.
func roundTrip(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal %T: %w", value, err)
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("cannot rebuild %T as a tree: %w", value, err)
	}
	return tree, nil
}
