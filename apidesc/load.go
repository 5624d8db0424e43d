package apidesc

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/rsbind/errors"
)

// Format is the encoding of a description file
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks a format from the file extension, defaulting to JSON
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and parses a description from a local file
func LoadFile(path string, format Format) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.WrapLoad(err, "reading api description "+path),
			"check input.source, or pass --input",
		)
	}
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	desc, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return desc, nil
}

// Parse decodes a description and checks it against the expected schema
func Parse(data []byte, format Format) (*Description, error) {
	var desc Description

	switch format {
	case FormatJSON, FormatAuto:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&desc); err != nil {
			return nil, errors.WithHint(
				errors.WrapLoad(err, "decoding json api description"),
				"the file must be a raylib_api.json style object",
			)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &desc); err != nil {
			return nil, errors.WithHint(
				errors.WrapLoad(err, "decoding yaml api description"),
				"the file must mirror the raylib_api.json layout",
			)
		}
	default:
		return nil, errors.NewLoadError("unknown description format %q", format)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Validate checks the fields generation depends on.
// Type strings are not checked: unknown types pass through to the target compiler.
func (d *Description) Validate() error {
	if d.Defines == nil && d.Functions == nil {
		return errors.WithHint(
			errors.NewLoadError("api description has neither defines nor functions"),
			"expected top-level \"defines\" and \"functions\" arrays",
		)
	}

	for i, def := range d.Defines {
		if def.Name == "" {
			return errors.NewLoadError("defines[%d]: missing name", i)
		}
		if def.IsColor() && def.Value == nil {
			return errors.NewLoadError("defines[%d] %s: COLOR define without value", i, def.Name)
		}
	}

	for i, fn := range d.Functions {
		if fn.Name == "" {
			return errors.NewLoadError("functions[%d]: missing name", i)
		}
		if fn.ReturnType == "" {
			return errors.NewLoadError("functions[%d] %s: missing returnType", i, fn.Name)
		}
		for j, p := range fn.Params {
			if p.Name == "" || p.Type == "" {
				return errors.NewLoadError("functions[%d] %s: params[%d] needs name and type", i, fn.Name, j)
			}
		}
	}

	for i, s := range d.Structs {
		if s.Name == "" {
			return errors.NewLoadError("structs[%d]: missing name", i)
		}
	}
	for i, a := range d.Aliases {
		if a.Name == "" {
			return errors.NewLoadError("aliases[%d]: missing name", i)
		}
	}
	for i, e := range d.Enums {
		if e.Name == "" {
			return errors.NewLoadError("enums[%d]: missing name", i)
		}
	}
	for i, c := range d.Callbacks {
		if c.Name == "" {
			return errors.NewLoadError("callbacks[%d]: missing name", i)
		}
	}
	return nil
}
