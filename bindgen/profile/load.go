package profile

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/rsbind/bindgen/ctype"
	"github.com/teranos/rsbind/display"
	"github.com/teranos/rsbind/errors"
)

// overlay is a profile file. Scalars replace the built-in value when set,
// base_types entries are merged, reserved_words replaces the list, and
// extra_reserved_words extends it.
type overlay struct {
	Language           *string           `toml:"language"`
	SysCrate           *string           `toml:"sys_crate"`
	CallPrefix         *string           `toml:"call_prefix"`
	Preamble           *preambleOverlay  `toml:"preamble"`
	ColorType          *string           `toml:"color_type"`
	RenameSuffix       *string           `toml:"rename_suffix"`
	PointerPolicy      *string           `toml:"pointer_policy"`
	BaseTypes          map[string]string `toml:"base_types"`
	ReservedWords      []string          `toml:"reserved_words"`
	ExtraReservedWords []string          `toml:"extra_reserved_words"`
	SupportedVersions  *string           `toml:"supported_versions"`
	StringParams       *bool             `toml:"string_params"`
	StringHelper       *string           `toml:"string_helper"`
}

type preambleOverlay struct {
	Functions []string `toml:"functions"`
	Colors    []string `toml:"colors"`
	Types     []string `toml:"types"`
}

// Load reads a TOML profile file on top of the built-in Rust profile.
// An empty path returns the built-in profile.
func Load(path string) (*Profile, error) {
	base := Rust()
	if path == "" {
		return base, nil
	}

	var o overlay
	md, err := toml.DecodeFile(path, &o)
	if err != nil {
		return nil, errors.WithHint(
			errors.Mark(errors.Wrapf(err, "failed to read profile %s", path), errors.ErrInvalidProfile),
			"profiles are TOML; see `rsbind profile show` for the full layout",
		)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Mark(
			errors.Newf("profile %s: unknown keys %s", path, strings.Join(keys, ", ")),
			errors.ErrInvalidProfile,
		)
	}

	p := merge(base, o)
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return p, nil
}

// merge applies an overlay to a copy of base
func merge(base *Profile, o overlay) *Profile {
	p := base.Clone()

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&p.Language, o.Language)
	setString(&p.SysCrate, o.SysCrate)
	setString(&p.CallPrefix, o.CallPrefix)
	setString(&p.ColorType, o.ColorType)
	setString(&p.RenameSuffix, o.RenameSuffix)
	setString(&p.SupportedVersions, o.SupportedVersions)
	setString(&p.StringHelper, o.StringHelper)
	if o.StringParams != nil {
		p.StringParams = *o.StringParams
	}
	if o.PointerPolicy != nil {
		p.PointerPolicy = ctype.Policy(*o.PointerPolicy)
	}

	if o.Preamble != nil {
		if o.Preamble.Functions != nil {
			p.Preamble.Functions = o.Preamble.Functions
		}
		if o.Preamble.Colors != nil {
			p.Preamble.Colors = o.Preamble.Colors
		}
		if o.Preamble.Types != nil {
			p.Preamble.Types = o.Preamble.Types
		}
	}

	for k, v := range o.BaseTypes {
		p.BaseTypes[k] = v
	}
	if o.ReservedWords != nil {
		p.ReservedWords = o.ReservedWords
	}
	p.ReservedWords = append(p.ReservedWords, o.ExtraReservedWords...)

	p.index()
	return p
}

// Encode renders the profile as toml (the default), yaml, or json
func (p *Profile) Encode(format string) ([]byte, error) {
	if format == "" {
		format = display.FormatTOML
	}
	data, err := display.Encode(p, format)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode profile")
	}
	return data, nil
}
