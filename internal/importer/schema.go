package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of an activity import or export
// file. The same shape is used for JSON and YAML.
type ImportSchema struct {
	Activities []ActivityImport `json:"activities" yaml:"activities"`
}

// ActivityImport is one activity record with its schedule and history.
// Dates are YYYY-MM-DD strings.
type ActivityImport struct {
	Name              string            `json:"name" yaml:"name"`
	Category          string            `json:"category,omitempty" yaml:"category,omitempty"`
	Priority          string            `json:"priority,omitempty" yaml:"priority,omitempty"`
	Description       string            `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate         string            `json:"start_date" yaml:"start_date"`
	Weekdays          []string          `json:"weekdays" yaml:"weekdays"`
	TargetOccurrences int               `json:"target_occurrences" yaml:"target_occurrences"`
	Archived          bool              `json:"archived,omitempty" yaml:"archived,omitempty"`
	Cover             string            `json:"cover,omitempty" yaml:"cover,omitempty"`
	Completions       []string          `json:"completions,omitempty" yaml:"completions,omitempty"`
	Skips             []string          `json:"skips,omitempty" yaml:"skips,omitempty"`
	Notes             map[string]string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Format selects the file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected json or yaml)", s)
	}
}

// FormatFromPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}

// Encode writes schema to w in the given format.
func Encode(w io.Writer, schema *ImportSchema, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}

// LoadImportSchema reads and parses an import file, choosing the format by
// extension.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatFromPath(path))
}
