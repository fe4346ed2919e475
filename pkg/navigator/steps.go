package navigator

import (
	"strconv"
	"strings"
)

// Step is one atomic access operation derived from parsing a path.
// Exactly two kinds exist: Key selects a field by name in a keyed
// container, Index selects an element by position in an ordered one.
type Step interface {
	String() string
	step()
}

// Key selects a field by name in a keyed container.
type Key struct {
	Name string
}

func (Key) step() {}

func (k Key) String() string { return k.Name }

// Index selects an element by zero-based position in an ordered container.
type Index struct {
	I int
}

func (Index) step() {}

func (ix Index) String() string { return "[" + strconv.Itoa(ix.I) + "]" }

// ReconstructPath rebuilds a path string from steps, joining Key steps
// with sep and rendering Index steps in bracket notation.
func ReconstructPath(steps []Step, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	var b strings.Builder
	for i, s := range steps {
		switch v := s.(type) {
		case Key:
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(v.Name)
		case Index:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(v.I))
			b.WriteByte(']')
		}
	}
	return b.String()
}
