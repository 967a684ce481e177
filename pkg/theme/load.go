package theme

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/clockblocks/pkg/errors"
)

// Format identifies a themes file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// ParseFormat parses a format name; "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported themes format %q (must be toml, yaml, or json)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "themes file %q has no extension", path)
	}
	return ParseFormat(ext)
}

// Load reads and validates a themes file. The format follows the extension.
//
// The file holds one table per theme:
//
//	[ocean]
//	hour = "#1e3a5f"
//	minute = "#3d7ea6"
//	both = "#89c2d9"
func Load(path string) (*Themes, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "themes file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read themes file %s", path)
	}
	ts, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return ts, nil
}

// Parse decodes and validates themes from data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Themes, error) {
	raw := map[string]Theme{}

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported themes format %q", format)
	}

	return NewThemes(raw)
}

// Encode writes themes in the given format. Output is sorted by name.
func Encode(ts *Themes, format Format) ([]byte, error) {
	m := ts.Map()
	var buf bytes.Buffer

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		buf.Write(data)
		buf.WriteByte('\n')
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported themes format %q", format)
	}
	return buf.Bytes(), nil
}

// LoadWithBuiltin loads path and merges it over the builtin themes.
// An empty path returns the builtins alone.
func LoadWithBuiltin(path string) (*Themes, error) {
	if path == "" {
		return Builtin(), nil
	}
	ts, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Merge(Builtin(), ts), nil
}

// FormatHelp lists the supported file formats for CLI help text.
func FormatHelp() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
