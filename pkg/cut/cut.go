// Package cut wraps a nested map[string]any tree with a mapping-like
// API addressed by delimited path strings, so callers write
// c.Get("pokemon[0].level") instead of unwrapping each container
// level by hand. All path resolution is delegated to pkg/navigator;
// this layer only decides soft-default and wrapping policy.
package cut

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sort"

	"dario.cat/mergo"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/treecut/pkg/navigator"
)

// Item is one key/value pair from the top level of the tree.
type Item struct {
	Key   string
	Value any
}

// Cut is a thin view over a caller-owned tree. It never copies the
// tree and provides no locking of its own: concurrent use inherits
// whatever guarantees the underlying maps and slices already have.
type Cut struct {
	data map[string]any
	sep  string
	log  logr.Logger
}

// Option configures a Cut.
type Option func(*Cut)

// WithSeparator changes the segment separator (default ".").
func WithSeparator(sep string) Option {
	return func(c *Cut) {
		if sep != "" {
			c.sep = sep
		}
	}
}

// WithLogger routes V(1) mutation traces to lgr.
func WithLogger(lgr logr.Logger) Option {
	return func(c *Cut) {
		c.log = lgr
	}
}

// New wraps data. A nil map is replaced with an empty one so a
// zero-input Cut is immediately usable.
func New(data map[string]any, opts ...Option) *Cut {
	if data == nil {
		data = map[string]any{}
	}
	c := &Cut{data: data, sep: navigator.DefaultSeparator, log: logr.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromKeys builds a Cut whose top-level keys all map to value.
func FromKeys(keys []string, value any, opts ...Option) *Cut {
	data := make(map[string]any, len(keys))
	for _, k := range keys {
		data[k] = value
	}
	return New(data, opts...)
}

// Data returns the underlying tree. Mutations through it are visible
// to the Cut and vice versa.
func (c *Cut) Data() map[string]any { return c.data }

// Separator returns the configured segment separator.
func (c *Cut) Separator() string { return c.sep }

// Get resolves path and returns the value at its end.
func (c *Cut) Get(path string) (any, error) {
	steps, err := navigator.Parse(path, c.sep)
	if err != nil {
		return nil, err
	}
	return navigator.Resolve(c.data, steps, path)
}

// GetOr is Get with a soft default: a missing key or an out-of-range
// index yields def instead of an error. A nil def counts as provided.
// Malformed paths and type mismatches still fail.
func (c *Cut) GetOr(path string, def any) (any, error) {
	v, err := c.Get(path)
	if err != nil {
		if softFailure(err) {
			return def, nil
		}
		return nil, err
	}
	return v, nil
}

// Set writes value at path. The final key of a mapping may be created;
// a final sequence index must already exist, and intermediate
// containers are never created (see SetDefault for that).
func (c *Cut) Set(path string, value any) error {
	steps, err := navigator.Parse(path, c.sep)
	if err != nil {
		return err
	}
	parent, final, err := navigator.ResolveParent(c.data, steps, path)
	if err != nil {
		return err
	}
	if err := navigator.Store(parent, final, value, path); err != nil {
		return err
	}
	c.log.V(1).Info("set", "path", path)
	return nil
}

// Delete removes the value at path.
func (c *Cut) Delete(path string) error {
	_, err := c.Pop(path)
	return err
}

// Pop removes and returns the value at path.
func (c *Cut) Pop(path string) (any, error) {
	steps, err := navigator.Parse(path, c.sep)
	if err != nil {
		return nil, err
	}
	v, err := navigator.Remove(c.data, steps, path)
	if err != nil {
		return nil, err
	}
	c.log.V(1).Info("pop", "path", path)
	return v, nil
}

// PopOr is Pop with a soft default, under the same policy as GetOr.
func (c *Cut) PopOr(path string, def any) (any, error) {
	v, err := c.Pop(path)
	if err != nil {
		if softFailure(err) {
			return def, nil
		}
		return nil, err
	}
	return v, nil
}

// SetDefault returns the value at path if it resolves; otherwise it
// stores def there and returns def. Missing intermediate mapping keys
// are created on the way down. Sequences are never created or
// extended: an out-of-range index fails at any position.
func (c *Cut) SetDefault(path string, def any) (any, error) {
	steps, err := navigator.Parse(path, c.sep)
	if err != nil {
		return nil, err
	}
	parent, final, err := navigator.ResolveParentCreating(c.data, steps, path)
	if err != nil {
		return nil, err
	}
	v, err := navigator.Fetch(parent, final, path)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, navigator.ErrMissingKey) {
		return nil, err
	}
	if err := navigator.Store(parent, final, def, path); err != nil {
		return nil, err
	}
	c.log.V(1).Info("set default", "path", path)
	return def, nil
}

// Has reports whether path resolves to a value. Any failure, including
// a malformed path, counts as absent.
func (c *Cut) Has(path string) bool {
	_, err := c.Get(path)
	return err == nil
}

// Update applies each pair through Set, so keys are themselves paths.
func (c *Cut) Update(pairs map[string]any) error {
	for k, v := range pairs {
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Merge deep-merges other into the tree, other's values winning on
// conflict. Unlike Update, keys here are plain keys, not paths.
func (c *Cut) Merge(other map[string]any) error {
	return mergo.Merge(&c.data, other, mergo.WithOverride)
}

// All resolves path to an ordered container and wraps each mapping
// element in its own Cut sharing this one's separator.
func (c *Cut) All(path string) ([]*Cut, error) {
	v, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, navigator.NewResolveError(navigator.ErrTypeMismatch, path, path,
			"value is not a sequence")
	}
	out := make([]*Cut, 0, len(seq))
	for i, elem := range seq {
		m, ok := elem.(map[string]any)
		if !ok {
			return nil, navigator.NewResolveError(navigator.ErrTypeMismatch,
				fmt.Sprintf("[%d]", i), path, "element is not a mapping")
		}
		out = append(out, New(m, WithSeparator(c.sep), WithLogger(c.log)))
	}
	return out, nil
}

// Keys returns the top-level keys in ascending order.
func (c *Cut) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the top-level values, ordered by their keys.
func (c *Cut) Values() []any {
	keys := c.Keys()
	values := make([]any, 0, len(keys))
	for _, k := range keys {
		values = append(values, c.data[k])
	}
	return values
}

// Items returns the top-level pairs, ordered by key.
func (c *Cut) Items() []Item {
	keys := c.Keys()
	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, Item{Key: k, Value: c.data[k]})
	}
	return items
}

// Len returns the number of top-level keys.
func (c *Cut) Len() int { return len(c.data) }

// Clear removes every top-level key.
func (c *Cut) Clear() {
	clear(c.data)
}

// Copy returns a shallow copy of the top level of the tree.
func (c *Cut) Copy() map[string]any {
	return maps.Clone(c.data)
}

// Equal reports deep equality with other.
func (c *Cut) Equal(other map[string]any) bool {
	return reflect.DeepEqual(c.data, other)
}

func (c *Cut) String() string {
	return fmt.Sprintf("%v", c.data)
}

// softFailure reports whether err is the kind of structural miss that
// a caller-supplied default may absorb.
func softFailure(err error) bool {
	return errors.Is(err, navigator.ErrMissingKey) || errors.Is(err, navigator.ErrIndexOutOfRange)
}
