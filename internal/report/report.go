// Package report writes theme groups to disk and reads them back.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themegroup/internal/group"
)

// Format is a report serialisation format.
type Format string

const (
	// FormatJSON writes a JSON object with two-space indentation.
	FormatJSON Format = "json"
	// FormatYAML writes a YAML mapping.
	FormatYAML Format = "yaml"
)

// Indent is the indentation used for JSON reports.
const Indent = "  "

// ErrUnknownFormat is returned for formats other than json and yaml.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatForPath picks the format from the file extension of path: .yaml and
// .yml are YAML, .json is JSON, anything else is fallback.
func FormatForPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return fallback
	}
}

// Encode writes groups to w in the given format.
func Encode(w io.Writer, groups *group.Groups, format Format) error {
	switch format {
	case FormatJSON:
		compact, err := groups.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to encode groups: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, compact, "", Indent); err != nil {
			return fmt.Errorf("failed to indent groups: %w", err)
		}
		_, err = buf.WriteTo(w)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(groups); err != nil {
			return fmt.Errorf("failed to encode groups: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Write replaces the file at path with the encoded groups.
func Write(path string, groups *group.Groups, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, groups, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Read loads a report written by Write in the given format.
func Read(path string, format Format) (*group.Groups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	groups := group.New()
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, groups)
	case FormatYAML:
		err = yaml.Unmarshal(data, groups)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s report %s: %w", format, path, err)
	}
	return groups, nil
}

// Summary returns the one-line count of distinct signatures.
func Summary(count int) string {
	return fmt.Sprintf("Found %d unique color signatures.", count)
}
