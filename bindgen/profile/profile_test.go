package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rsbind/bindgen/ctype"
	"github.com/teranos/rsbind/errors"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRust(t *testing.T) {
	p := Rust()
	require.NoError(t, p.Validate())

	assert.Equal(t, "rust", p.Language)
	assert.Equal(t, "rl::", p.CallPrefix)
	assert.Equal(t, "Color", p.ColorType)
	assert.Equal(t, ctype.PolicyC, p.PointerPolicy)
	assert.False(t, p.StringParams)
	assert.Equal(t, "str_to_c_char", p.StringHelper)

	expected := map[string]string{
		"unsigned char": "u8",
		"unsigned int":  "c_uint",
		"int":           "c_int",
		"long":          "c_long",
		"float":         "f32",
		"double":        "f64",
		"void":          "c_void",
		"char":          "c_char",
	}
	for c, rust := range expected {
		assert.Equal(t, rust, p.BaseTypes[c], c)
	}
}

func TestRename(t *testing.T) {
	p := Rust()

	// Every reserved word gets the suffix
	for _, w := range rustKeywords {
		assert.Equal(t, w+"_", p.Rename(w), w)
	}

	assert.Equal(t, "box_", p.Rename("box"))
	assert.Equal(t, "type_", p.Rename("type"))
	assert.Equal(t, "ref_", p.Rename("ref"))
	assert.Equal(t, "width", p.Rename("width"))
	assert.Equal(t, "boxes", p.Rename("boxes"))

	// The bare wildcard is not a usable parameter name
	assert.Equal(t, "__", p.Rename("_"))
	assert.Equal(t, "__", p.Rename("__"))
}

func TestRename_ZeroValueProfile(t *testing.T) {
	p := &Profile{RenameSuffix: "_", ReservedWords: []string{"box"}}
	assert.Equal(t, "box_", p.Rename("box"))
}

func TestPreambleLines(t *testing.T) {
	p := Rust()
	lines := p.PreambleLines(p.Preamble.Colors)
	assert.Equal(t, []string{"use raylib_rs_plain_sys as rl;", "pub use rl::Color;"}, lines)
	// The profile's own lines are untouched
	assert.Contains(t, p.Preamble.Colors[0], SysCratePlaceholder)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr string
	}{
		{name: "empty language", mutate: func(p *Profile) { p.Language = "" }, wantErr: "language"},
		{name: "empty color type", mutate: func(p *Profile) { p.ColorType = "" }, wantErr: "color_type"},
		{name: "empty suffix", mutate: func(p *Profile) { p.RenameSuffix = "" }, wantErr: "rename_suffix"},
		{name: "unknown policy", mutate: func(p *Profile) { p.PointerPolicy = "rust" }, wantErr: "pointer_policy"},
		{name: "no base types", mutate: func(p *Profile) { p.BaseTypes = nil }, wantErr: "base_types"},
		{name: "bad constraint", mutate: func(p *Profile) { p.SupportedVersions = "not a range" }, wantErr: "supported_versions"},
		{name: "string params without helper", mutate: func(p *Profile) {
			p.StringParams = true
			p.StringHelper = ""
		}, wantErr: "string_helper"},
		{name: "rename collides", mutate: func(p *Profile) {
			p.ReservedWords = []string{"box", "box_"}
			p.index()
		}, wantErr: "yields reserved word"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Rust()
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidProfile))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	p := Rust()

	assert.NoError(t, p.CheckVersion(""))
	assert.NoError(t, p.CheckVersion("4.2.0"))
	assert.NoError(t, p.CheckVersion("5.0"))

	err := p.CheckVersion("3.7.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedVersion))
	assert.NotEmpty(t, errors.GetAllHints(err))

	err = p.CheckVersion("latest")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedVersion))

	p.SupportedVersions = ""
	assert.NoError(t, p.CheckVersion("1.0.0"))
}

func TestLoad_Empty(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Rust().BaseTypes, p.BaseTypes)
}

func TestLoad_Overlay(t *testing.T) {
	path := writeProfile(t, `
sys_crate = "raylib_sys"
pointer_policy = "legacy"
supported_versions = "~5.0"
extra_reserved_words = ["raw"]

[base_types]
"size_t" = "usize"
"long" = "i64"

[preamble]
types = ["use {sys_crate} as rl;", "// types"]
`)

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "raylib_sys", p.SysCrate)
	assert.Equal(t, ctype.PolicyLegacy, p.PointerPolicy)
	assert.Equal(t, "~5.0", p.SupportedVersions)
	assert.Equal(t, "usize", p.BaseTypes["size_t"])
	assert.Equal(t, "i64", p.BaseTypes["long"])
	assert.Equal(t, "f32", p.BaseTypes["float"], "untouched entries survive")
	assert.Equal(t, "raw_", p.Rename("raw"))
	assert.Equal(t, "box_", p.Rename("box"))
	assert.Equal(t, []string{"use raylib_sys as rl;", "// types"}, p.PreambleLines(p.Preamble.Types))
	assert.Equal(t, Rust().Preamble.Colors, p.Preamble.Colors)

	// The built-in profile is not modified by loading
	_, ok := Rust().BaseTypes["size_t"]
	assert.False(t, ok)
}

func TestLoad_StringParams(t *testing.T) {
	p, err := Load(writeProfile(t, "string_params = true\n"))
	require.NoError(t, err)
	assert.True(t, p.StringParams)
	assert.Equal(t, "str_to_c_char", p.StringHelper)

	p, err = Load(writeProfile(t, "string_params = true\nstring_helper = \"to_c_str\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "to_c_str", p.StringHelper)

	_, err = Load(writeProfile(t, "string_params = true\nstring_helper = \"\"\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidProfile))
}

func TestLoad_ReplaceReservedWords(t *testing.T) {
	path := writeProfile(t, `reserved_words = ["box"]`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "box_", p.Rename("box"))
	assert.Equal(t, "type", p.Rename("type"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed toml", content: `language = `, wantErr: "failed to read profile"},
		{name: "unknown key", content: `colour_type = "Colour"`, wantErr: "unknown keys colour_type"},
		{name: "invalid result", content: `pointer_policy = "smart"`, wantErr: "pointer_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProfile(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidProfile))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidProfile))
}

func TestEncode(t *testing.T) {
	p := Rust()

	data, err := p.Encode("toml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "sys_crate = ")
	assert.Contains(t, string(data), "raylib_rs_plain_sys")
	assert.Contains(t, string(data), "[base_types]")

	data, err = p.Encode("yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "sys_crate: raylib_rs_plain_sys")

	data, err = p.Encode("json")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "rust", decoded["language"])

	_, err = p.Encode("xml")
	assert.Error(t, err)
}

func TestEncodedTOMLLoadsBack(t *testing.T) {
	data, err := Rust().Encode("toml")
	require.NoError(t, err)

	p, err := Load(writeProfile(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, Rust().ReservedWords, p.ReservedWords)
	assert.Equal(t, Rust().BaseTypes, p.BaseTypes)
}

func TestClone(t *testing.T) {
	p := Rust()
	c := p.Clone()
	c.BaseTypes["int"] = "i32"
	c.ReservedWords[0] = "changed"

	assert.Equal(t, "c_int", p.BaseTypes["int"])
	assert.Equal(t, "as", p.ReservedWords[0])
}

func TestSortedBaseTypes(t *testing.T) {
	keys := Rust().SortedBaseTypes()
	assert.Equal(t, "bool", keys[0])
	assert.IsIncreasing(t, keys)
}
