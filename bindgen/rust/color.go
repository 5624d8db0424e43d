package rust

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/teranos/rsbind/apidesc"
	"github.com/teranos/rsbind/errors"
)

// ColorComponents is the channel count of a color define
const ColorComponents = 4

// nonColorChars matches everything that is not a digit or comma
var nonColorChars = regexp.MustCompile(`[^0-9,]`)

// ColorConst is one color constant: RGBA channel bytes
type ColorConst struct {
	Name        string
	Description string
	R, G, B, A  uint8
}

// Colors converts every COLOR define, in order. The value is rendered to
// text, stripped to digits and commas, and split into exactly four
// channels; any other digits in the value corrupt the result.
func (g *Generator) Colors(defines []apidesc.Define) ([]ColorConst, error) {
	var out []ColorConst
	for _, d := range defines {
		if !d.IsColor() {
			continue
		}
		c, err := ParseColor(d)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseColor extracts the four channels of a COLOR define
func ParseColor(d apidesc.Define) (ColorConst, error) {
	text, err := renderValue(d.Value)
	if err != nil {
		return ColorConst{}, errors.Mark(
			errors.Wrapf(err, "define %s: rendering value", d.Name),
			errors.ErrColorValue,
		)
	}

	stripped := nonColorChars.ReplaceAllString(text, "")
	parts := strings.Split(stripped, ",")
	if len(parts) != ColorComponents {
		return ColorConst{}, errors.WithHint(
			errors.Mark(
				errors.Newf("define %s: expected %d color components in %s, got %d", d.Name, ColorComponents, text, len(parts)),
				errors.ErrColorValue,
			),
			"COLOR values must look like CLITERAL(Color){ r, g, b, a }",
		)
	}

	var channels [ColorComponents]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return ColorConst{}, errors.Mark(
				errors.Wrapf(err, "define %s: component %d %q is not a byte", d.Name, i, p),
				errors.ErrColorValue,
			)
		}
		channels[i] = uint8(v)
	}

	return ColorConst{
		Name:        d.Name,
		Description: d.Description,
		R:           channels[0],
		G:           channels[1],
		B:           channels[2],
		A:           channels[3],
	}, nil
}

// renderValue renders an untyped value as text. Strings are returned as is;
// objects are rejected.
func renderValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case map[string]interface{}, map[interface{}]interface{}:
		return "", errors.New("object values have no channel order")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// RenderColor renders a color constant of the given aggregate type
func RenderColor(c ColorConst, colorType string) string {
	return fmt.Sprintf("pub const %s: %s = %s { r: %d, g: %d, b: %d, a: %d };\n",
		c.Name, colorType, colorType, c.R, c.G, c.B, c.A)
}
