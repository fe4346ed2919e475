// Package loader builds navigable trees (map[string]any / []any /
// scalars) from YAML, JSON, or TOML text, from files, or from
// arbitrary Go values. It is the construction side of the library:
// everything it returns can be handed straight to pkg/navigator or
// wrapped in a pkg/cut.Cut.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load parses input into a tree, auto-detecting the format:
// JSON objects/arrays, TOML tables, single YAML documents, and
// multi-document YAML (returned as a []any of documents).
func Load(input string) (any, error) {
	return LoadWithLogger(input, logr.Discard())
}

// LoadWithLogger is Load with a logger recording which parser handled
// the input and any fallback attempts.
func LoadWithLogger(input string, lgr logr.Logger) (any, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("empty input")
	}

	if strings.Contains(trimmed, "\n---") || strings.HasPrefix(trimmed, "---") {
		lgr.V(1).Info("parsing input", "format", "multi-document yaml")
		return loadMultiDocYAML(trimmed)
	}

	if isLikelyTOML(trimmed) {
		lgr.V(1).Info("parsing input", "format", "toml")
		return loadTOML(trimmed)
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		tree, err := loadJSON(trimmed)
		if err == nil {
			lgr.V(1).Info("parsing input", "format", "json")
			return tree, nil
		}
		lgr.V(1).Info("json parse failed, falling back to yaml", "reason", err.Error())
	}

	lgr.V(1).Info("parsing input", "format", "yaml")
	return loadYAML(trimmed)
}

// LoadBytes parses input bytes into a tree.
func LoadBytes(data []byte) (any, error) {
	return Load(string(data))
}

// LoadFile reads a file and parses it into a tree. The extension is a
// hint only; contents still go through format auto-detection.
func LoadFile(path string) (any, error) {
	return LoadFileWithLogger(path, logr.Discard())
}

// LoadFileWithLogger is LoadFile with parse-attempt logging.
func LoadFileWithLogger(path string, lgr logr.Logger) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lgr.V(1).Info("loaded file", "path", path, "ext", filepath.Ext(path), "bytes", len(data))
	return LoadWithLogger(string(data), lgr)
}

// LoadMap is Load restricted to inputs whose root is a keyed
// container, the shape pkg/cut wraps.
func LoadMap(input string) (map[string]any, error) {
	tree, err := Load(input)
	if err != nil {
		return nil, err
	}
	m, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("root is %T, not a mapping", tree)
	}
	return m, nil
}

func loadJSON(input string) (any, error) {
	var tree any
	if err := json.Unmarshal([]byte(input), &tree); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return tree, nil
}

func loadYAML(input string) (any, error) {
	var tree any
	if err := yaml.Unmarshal([]byte(input), &tree); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return tree, nil
}

func loadTOML(input string) (any, error) {
	var tree any
	if err := toml.Unmarshal([]byte(input), &tree); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return tree, nil
}

// loadMultiDocYAML parses "---"-separated documents. A single document
// is returned bare; several come back as a []any tree.
func loadMultiDocYAML(input string) (any, error) {
	var docs []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	switch len(docs) {
	case 0:
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	case 1:
		return docs[0], nil
	default:
		return docs, nil
	}
}

// isLikelyTOML distinguishes TOML from YAML/JSON without full parsing:
// a [section] header line, or a majority of key = value lines, wins.
// JSON arrays like [1, 2] contain separators a TOML header never has.
func isLikelyTOML(input string) bool {
	sections := 0
	keyValues := 0
	nonEmpty := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if isTOMLSection(trimmed) {
			sections++
		}
		if k, _, ok := strings.Cut(trimmed, "="); ok && !strings.ContainsAny(k, ":{") {
			keyValues++
		}
	}
	if sections > 0 {
		return true
	}
	return nonEmpty > 0 && keyValues > nonEmpty/2
}

func isTOMLSection(line string) bool {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return false
	}
	inner := strings.Trim(line, "[]")
	return inner != "" && !strings.ContainsAny(inner, ", :")
}
