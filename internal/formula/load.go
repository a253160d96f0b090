package formula

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Document formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadFormula reads and validates a formula file. The returned warnings
// list unknown fields; they never fail the load.
func LoadFormula(path string) (*Formula, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read formula file: %w", err)
	}
	return ParseFormula(data, FormatForPath(path))
}

// ParseFormula decodes and validates formula document text.
func ParseFormula(data []byte, format string) (*Formula, []string, error) {
	doc, err := DecodeDocument(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse formula document: %w", err)
	}
	warnings := UnknownFormulaFields(doc)
	f, err := ValidateFormula(doc)
	if err != nil {
		return nil, warnings, err
	}
	return f, warnings, nil
}

// ParseTask decodes and validates task document text.
func ParseTask(data []byte, format string) (*Task, []string, error) {
	doc, err := DecodeDocument(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse task document: %w", err)
	}
	warnings := UnknownTaskFields(doc)
	t, err := ValidateTask(doc)
	if err != nil {
		return nil, warnings, err
	}
	return t, warnings, nil
}

// DecodeDocument parses raw document text into a generic mapping. The
// result contains only map[string]any, []any, and scalar values regardless
// of the source format.
func DecodeDocument(data []byte, format string) (map[string]any, error) {
	var doc any
	switch format {
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		doc = m
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}

	doc = normalize(doc)
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document must be a mapping")
	}
	return m, nil
}

// normalize flattens decoder-specific container types into plain
// map[string]any / []any trees. BurntSushi represents TOML arrays of tables
// as []map[string]any, which the schema validator cannot walk.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
