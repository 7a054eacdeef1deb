// Package options loads the choices offered by the picker.
package options

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatLines Format = "lines"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat parses a format name. An empty name yields an empty format,
// which Load resolves from the file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "lines", "text", "txt":
		return FormatLines, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers the format from the file extension, falling back
// to lines.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatLines
	}
}

type Option struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty"`
	Group       string `json:"group,omitempty" yaml:"group,omitempty"`
}

// UnmarshalJSON accepts a bare string as an option with that label.
func (o *Option) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*o = Option{Label: label}
		return nil
	}
	type plain Option
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Option(p)
	return nil
}

// UnmarshalYAML accepts a scalar as an option with that label.
func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*o = Option{Label: node.Value}
		return nil
	}
	type plain Option
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*o = Option(p)
	return nil
}

// Load reads the options in path. An empty format is inferred from the
// extension.
func Load(path string, format Format) ([]Option, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open options: %w", err)
	}
	defer f.Close()
	if format == "" {
		format = FormatFromPath(path)
	}
	opts, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return opts, nil
}

// Decode reads options from r. Options without a label are dropped, a
// missing value defaults to the label and a missing ID is generated.
func Decode(r io.Reader, format Format) ([]Option, error) {
	var (
		opts []Option
		err  error
	)
	switch format {
	case FormatJSON:
		opts, err = decodeJSON(r)
	case FormatYAML:
		opts, err = decodeYAML(r)
	case FormatLines, "":
		opts, err = decodeLines(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return normalize(opts), nil
}

func decodeJSON(r io.Reader) ([]Option, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var opts []Option
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse JSON options: %w", err)
	}
	return opts, nil
}

func decodeYAML(r io.Reader) ([]Option, error) {
	var opts []Option
	if err := yaml.NewDecoder(r).Decode(&opts); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse YAML options: %w", err)
	}
	return opts, nil
}

// decodeLines reads one option per line, "label" or "label<TAB>description".
func decodeLines(r io.Reader) ([]Option, error) {
	var opts []Option
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		label, description, _ := strings.Cut(line, "\t")
		opts = append(opts, Option{
			Label:       label,
			Description: description,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	return opts, nil
}

func normalize(in []Option) []Option {
	out := make([]Option, 0, len(in))
	for _, o := range in {
		o.Label = strings.TrimSpace(o.Label)
		o.Description = strings.TrimSpace(o.Description)
		o.Group = strings.TrimSpace(o.Group)
		if o.Label == "" {
			continue
		}
		if o.Value == "" {
			o.Value = o.Label
		}
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		out = append(out, o)
	}
	return out
}
