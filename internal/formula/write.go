package formula

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Marshal serializes a formula in the given document format. Recognized
// field values round-trip losslessly; formatting and comments do not.
func Marshal(f *Formula, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, fmt.Errorf("failed to encode formula: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("failed to encode formula: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode formula: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// Save writes a formula back to disk in the format its extension names.
func Save(path string, f *Formula) error {
	data, err := Marshal(f, FormatForPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
