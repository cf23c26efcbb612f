// Package transfer converts goal collections to and from the JSON and YAML
// interchange formats.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/stefanpenner/focusone/pkg/goal"
)

// ErrInvalidImport is returned when a payload is not a well-formed array.
// Nothing from such a payload is applied.
var ErrInvalidImport = errors.New("invalid import")

// Format names an interchange format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Export writes goals as a pretty-printed JSON array.
func Export(w io.Writer, goals []goal.Goal) error {
	if goals == nil {
		goals = []goal.Goal{}
	}
	data, err := json.MarshalIndent(goals, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding goals: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ExportYAML writes goals as a YAML sequence.
func ExportYAML(w io.Writer, goals []goal.Goal) error {
	if goals == nil {
		goals = []goal.Goal{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(goals); err != nil {
		return fmt.Errorf("encoding goals: %w", err)
	}
	return enc.Close()
}

// ExportAs writes goals in format f.
func ExportAs(w io.Writer, f Format, goals []goal.Goal) error {
	if f == FormatYAML {
		return ExportYAML(w, goals)
	}
	return Export(w, goals)
}

// Import decodes a JSON array of goal records. Each element is sanitized on
// its own: missing fields get defaults and non-object elements are skipped.
func Import(data []byte, today goal.Date) ([]goal.Goal, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return fromRaw(v, today)
}

// ImportYAML is Import for a YAML sequence.
func ImportYAML(data []byte, today goal.Date) ([]goal.Goal, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return fromRaw(v, today)
}

// ImportAs decodes data in format f.
func ImportAs(data []byte, f Format, today goal.Date) ([]goal.Goal, error) {
	if f == FormatYAML {
		return ImportYAML(data, today)
	}
	return Import(data, today)
}

func fromRaw(v any, today goal.Date) ([]goal.Goal, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array of goals, got %s", ErrInvalidImport, describe(v))
	}
	goals := make([]goal.Goal, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		goals = append(goals, goal.FromRaw(raw, today))
	}
	return goals, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case float64, int, int64, uint64:
		return "a number"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%T", v)
}
