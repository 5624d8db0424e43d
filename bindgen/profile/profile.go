// Package profile describes a generation target: the type table, reserved
// words, naming rules and preambles a generator needs for one language.
package profile

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/rsbind/bindgen/ctype"
	"github.com/teranos/rsbind/errors"
)

// SysCratePlaceholder is replaced by SysCrate in preamble lines
const SysCratePlaceholder = "{sys_crate}"

// Preambles are the lines emitted after the header of each unit
type Preambles struct {
	Functions []string `toml:"functions" yaml:"functions" json:"functions"`
	Colors    []string `toml:"colors" yaml:"colors" json:"colors"`
	Types     []string `toml:"types" yaml:"types" json:"types"`
}

// Profile is an explicit, per-target set of generation tables
type Profile struct {
	Language          string            `toml:"language" yaml:"language" json:"language"`
	SysCrate          string            `toml:"sys_crate" yaml:"sys_crate" json:"sys_crate"`
	CallPrefix        string            `toml:"call_prefix" yaml:"call_prefix" json:"call_prefix"` // Prepended to native symbols in call bodies and re-exports
	Preamble          Preambles         `toml:"preamble" yaml:"preamble" json:"preamble"`
	ColorType         string            `toml:"color_type" yaml:"color_type" json:"color_type"`
	RenameSuffix      string            `toml:"rename_suffix" yaml:"rename_suffix" json:"rename_suffix"`
	PointerPolicy     ctype.Policy      `toml:"pointer_policy" yaml:"pointer_policy" json:"pointer_policy"`
	BaseTypes         map[string]string `toml:"base_types" yaml:"base_types" json:"base_types"`
	ReservedWords     []string          `toml:"reserved_words" yaml:"reserved_words" json:"reserved_words"`
	SupportedVersions string            `toml:"supported_versions" yaml:"supported_versions" json:"supported_versions"` // semver constraint on the described library

	// StringParams renders `const char *` parameters as &str and converts
	// them with the StringHelper function emitted into the functions unit
	StringParams bool   `toml:"string_params" yaml:"string_params" json:"string_params"`
	StringHelper string `toml:"string_helper" yaml:"string_helper" json:"string_helper"`

	reserved map[string]bool
}

// index builds the reserved-word lookup
func (p *Profile) index() {
	p.reserved = make(map[string]bool, len(p.ReservedWords))
	for _, w := range p.ReservedWords {
		p.reserved[w] = true
	}
}

// IsReserved reports whether name is a reserved word of the target
func (p *Profile) IsReserved(name string) bool {
	if p.reserved == nil {
		p.index()
	}
	return p.reserved[name]
}

// Rename returns name, or name+RenameSuffix when name is reserved or the
// bare wildcard `_`
func (p *Profile) Rename(name string) string {
	if name == "_" || p.IsReserved(name) {
		return name + p.RenameSuffix
	}
	return name
}

// PreambleLines returns a unit's preamble with the sys crate substituted
func (p *Profile) PreambleLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.ReplaceAll(l, SysCratePlaceholder, p.SysCrate)
	}
	return out
}

// Translator returns a type translator over the profile's tables
func (p *Profile) Translator() *ctype.Translator {
	return ctype.NewTranslator(p.BaseTypes, p.PointerPolicy)
}

// Validate checks that the profile can drive generation
func (p *Profile) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Mark(errors.Newf(format, args...), errors.ErrInvalidProfile)
	}

	if p.Language == "" {
		return invalid("profile: language cannot be empty")
	}
	if p.ColorType == "" {
		return invalid("profile: color_type cannot be empty")
	}
	if p.RenameSuffix == "" {
		return invalid("profile: rename_suffix cannot be empty")
	}
	if !p.PointerPolicy.Valid() {
		return errors.WithHint(
			invalid("profile: unknown pointer_policy %q", p.PointerPolicy),
			"use \"c\" or \"legacy\"",
		)
	}
	if len(p.BaseTypes) == 0 {
		return invalid("profile: base_types cannot be empty")
	}
	if p.StringParams && p.StringHelper == "" {
		return invalid("profile: string_params needs a string_helper name")
	}
	for _, w := range p.ReservedWords {
		if p.IsReserved(w + p.RenameSuffix) {
			return invalid("profile: renaming %q yields reserved word %q", w, w+p.RenameSuffix)
		}
	}
	if p.SupportedVersions != "" {
		if _, err := semver.NewConstraint(p.SupportedVersions); err != nil {
			return errors.Mark(
				errors.Wrapf(err, "profile: invalid supported_versions %q", p.SupportedVersions),
				errors.ErrInvalidProfile,
			)
		}
	}
	return nil
}

// CheckVersion verifies that the described library version satisfies
// SupportedVersions. An empty version or constraint always passes.
func (p *Profile) CheckVersion(version string) error {
	if version == "" || p.SupportedVersions == "" {
		return nil
	}

	ver, err := semver.NewVersion(version)
	if err != nil {
		return errors.Mark(
			errors.Wrapf(err, "invalid upstream version %s", version),
			errors.ErrUnsupportedVersion,
		)
	}

	constraint, err := semver.NewConstraint(p.SupportedVersions)
	if err != nil {
		return errors.Mark(
			errors.Wrapf(err, "invalid version constraint %s", p.SupportedVersions),
			errors.ErrInvalidProfile,
		)
	}

	if !constraint.Check(ver) {
		return errors.WithHint(
			errors.Mark(
				errors.Newf("%s profile supports %s, but upstream is %s", p.Language, p.SupportedVersions, version),
				errors.ErrUnsupportedVersion,
			),
			"set profile.path to a profile with a wider supported_versions, or change upstream.version",
		)
	}
	return nil
}

// SortedBaseTypes returns the base-type keys in order, for stable display
func (p *Profile) SortedBaseTypes() []string {
	keys := make([]string, 0, len(p.BaseTypes))
	for k := range p.BaseTypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy
func (p *Profile) Clone() *Profile {
	c := *p
	c.Preamble = Preambles{
		Functions: append([]string(nil), p.Preamble.Functions...),
		Colors:    append([]string(nil), p.Preamble.Colors...),
		Types:     append([]string(nil), p.Preamble.Types...),
	}
	c.BaseTypes = make(map[string]string, len(p.BaseTypes))
	for k, v := range p.BaseTypes {
		c.BaseTypes[k] = v
	}
	c.ReservedWords = append([]string(nil), p.ReservedWords...)
	c.index()
	return &c
}
