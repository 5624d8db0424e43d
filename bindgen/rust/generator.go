// Package rust generates Rust wrapper modules over a raylib-style -sys crate.
package rust

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/rsbind/apidesc"
	"github.com/teranos/rsbind/bindgen"
	"github.com/teranos/rsbind/bindgen/ctype"
	"github.com/teranos/rsbind/bindgen/profile"
	"github.com/teranos/rsbind/bindgen/util"
	"github.com/teranos/rsbind/logger"
)

// DefaultFormatCommand is the formatter run over generated units
const DefaultFormatCommand = "rustfmt --edition 2021"

// Generator implements bindgen.Generator for Rust. It is not safe for
// concurrent use.
type Generator struct {
	profile    *profile.Profile
	translator *ctype.Translator
	log        *zap.SugaredLogger
	verbosity  int
}

// NewGenerator creates a Rust generator over a profile. A nil profile means
// profile.Rust(); a nil logger discards output.
func NewGenerator(p *profile.Profile, log *zap.SugaredLogger) *Generator {
	if p == nil {
		p = profile.Rust()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Generator{
		profile:    p,
		translator: p.Translator(),
		log:        log,
	}
}

// Language returns "rust"
func (g *Generator) Language() string {
	return "rust"
}

// FileExtension returns "rs"
func (g *Generator) FileExtension() string {
	return "rs"
}

// Profile returns the profile driving the generator
func (g *Generator) Profile() *profile.Profile {
	return g.profile
}

// Translate converts one C type string under the profile's tables
func (g *Generator) Translate(cType string) string {
	return g.translator.Translate(cType).String()
}

// Generate produces function, color, and type re-export units (implements bindgen.Generator)
func (g *Generator) Generate(desc *apidesc.Description, opts bindgen.Options) (*bindgen.Result, error) {
	if opts.Files == (bindgen.FileNames{}) {
		opts.Files = bindgen.DefaultFileNames(g.FileExtension())
	}

	g.verbosity = opts.Verbosity

	result := &bindgen.Result{
		Language:    g.Language(),
		PackageName: opts.PackageName,
	}

	// Functions
	var fnBody strings.Builder
	if g.profile.StringParams {
		fnBody.WriteString(StringHelper(g.profile.StringHelper))
		fnBody.WriteString("\n")
	}
	for _, fn := range desc.Functions {
		sig := g.Signature(fn)
		result.ElidedVariadics += sig.Elided
		if logger.ShouldOutput(opts.Verbosity, logger.OutputSignatures) {
			g.log.Debugw("Generated signature",
				logger.FieldFunction, fn.Name,
				"signature", sig.Declaration(),
			)
		}
		fnBody.WriteString(RenderFunction(sig, g.profile.CallPrefix))
		fnBody.WriteString("\n")
	}

	// Colors
	colors, err := g.Colors(desc.Defines)
	if err != nil {
		return nil, err
	}
	result.SkippedDefines = len(desc.Defines) - len(colors)
	var colorBody strings.Builder
	for _, c := range colors {
		colorBody.WriteString(RenderColor(c, g.profile.ColorType))
	}

	// Type re-exports
	exports := ReExports(desc)
	var typesBody strings.Builder
	for _, name := range exports {
		typesBody.WriteString(fmt.Sprintf("pub use %s%s;\n", g.profile.CallPrefix, name))
	}

	result.Units = []bindgen.Unit{
		{
			Name:         bindgen.UnitFunctions,
			FileName:     opts.Files.Functions,
			Text:         g.unitText(opts, g.profile.Preamble.Functions, fnBody.String()),
			Declarations: len(desc.Functions),
		},
		{
			Name:         bindgen.UnitColors,
			FileName:     opts.Files.Colors,
			Text:         g.unitText(opts, g.profile.Preamble.Colors, colorBody.String()),
			Declarations: len(colors),
		},
		{
			Name:         bindgen.UnitTypes,
			FileName:     opts.Files.Types,
			Text:         g.unitText(opts, g.profile.Preamble.Types, typesBody.String()),
			Declarations: len(exports),
		},
	}

	g.log.Debugw("Generated units",
		"functions", len(desc.Functions),
		"colors", len(colors),
		"types", len(exports),
		"skipped_defines", result.SkippedDefines,
		"elided_variadics", result.ElidedVariadics,
		"translations", g.translator.CacheLen(),
	)

	return result, nil
}

// Header returns the comment lines that open every unit
func Header(opts bindgen.Options) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("/* automatically generated by %s */\n", opts.PackageName))
	if opts.UpstreamVersion != "" {
		sb.WriteString(fmt.Sprintf("/* upstream version: %s */\n", opts.UpstreamVersion))
	}
	if opts.GeneratorID != "" {
		sb.WriteString(fmt.Sprintf("%s %s */\n", bindgen.MetadataPrefix, opts.GeneratorID))
	}
	return sb.String()
}

// unitText assembles header, preamble, and body
func (g *Generator) unitText(opts bindgen.Options, preamble []string, body string) string {
	var sb strings.Builder
	sb.WriteString(Header(opts))
	for _, line := range g.profile.PreambleLines(preamble) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
	}
	return sb.String()
}

// ReExports lists struct, alias, enum, and callback names in description
// order, each once
func ReExports(desc *apidesc.Description) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, s := range desc.Structs {
		add(s.Name)
	}
	for _, a := range desc.Aliases {
		add(a.Name)
	}
	for _, e := range desc.Enums {
		add(e.Name)
	}
	for _, c := range desc.Callbacks {
		add(c.Name)
	}
	return names
}

// docComment renders a description as a /** */ block. A "*/" inside the
// description would end the comment early, so it is broken up.
func docComment(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	return "/** " + strings.ReplaceAll(description, "*/", "* /") + " */\n"
}

// snake converts a C identifier for use as a Rust function or parameter name
func snake(name string) string {
	return util.ToSnakeCase(name)
}
