// Package backup writes and reads full snapshots as files, in JSON or
// YAML, and runs scheduled backups.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/model"
)

// DefaultFileName is the suggested name of an exported snapshot.
const DefaultFileName = "photo-business-data.json"

// Format is a snapshot file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a config value to a Format. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("backup format %q: %w", s, apperr.ErrParse)
	}
}

// FormatFromPath picks the format by file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Export writes data to w. JSON output is indented with two spaces.
func Export(w io.Writer, data model.Data, f Format) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if f == FormatYAML {
		// Go through the JSON form so field names and id encoding match.
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("writing yaml snapshot: %w", err)
		}
		return enc.Close()
	}

	raw = append(raw, '\n')
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("writing json snapshot: %w", err)
	}
	return nil
}

// Import reads a snapshot from r and shallow-merges its top-level keys
// over base: a present key replaces that collection, a missing key keeps
// base's data. Malformed input fails with apperr.ErrParse.
func Import(r io.Reader, base model.Data, f Format) (model.Data, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return model.Data{}, fmt.Errorf("reading snapshot: %w", err)
	}

	if f == FormatYAML {
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return model.Data{}, fmt.Errorf("parsing yaml snapshot: %w: %w", apperr.ErrParse, err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return model.Data{}, fmt.Errorf("parsing yaml snapshot: %w: %w", apperr.ErrParse, err)
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Data{}, fmt.Errorf("parsing snapshot: %w: empty file", apperr.ErrParse)
	}
	data, err := model.DecodeSnapshot(base, raw)
	if err != nil {
		return model.Data{}, fmt.Errorf("%w: %w", apperr.ErrParse, err)
	}
	return data, nil
}
