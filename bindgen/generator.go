// Package bindgen generates foreign-function wrapper source from a C API
// description.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. Language-agnostic pipeline (this package): the Generator interface, the
//     Result of a run, line-ending normalisation, the external formatter hook,
//     writing and staleness checks.
//  2. Language-specific generators (rust/) turn an apidesc.Description into Units
//     using a target profile (profile/) and the C type translator (ctype/).
//
// # Design Decisions
//
//   - Output preserves input order exactly, so regenerated files diff cleanly
//   - Tables live in an explicit per-target profile, never in generator code
//   - Formatting failures are warnings: the unformatted text is still valid
//   - The header package name is a parameter, never read from the environment
package bindgen

import "github.com/teranos/rsbind/apidesc"

// Generator defines the interface for language-specific binding generators.
type Generator interface {
	// Generate produces every unit for the description
	Generate(desc *apidesc.Description, opts Options) (*Result, error)

	// FileExtension returns the file extension for this language (e.g., "rs")
	FileExtension() string

	// Language returns the language name (e.g., "rust")
	Language() string
}

// FileNames are the output file names of the three units
type FileNames struct {
	Functions string
	Colors    string
	Types     string
}

// DefaultFileNames returns the raylib-rs-plain file layout for the given extension
func DefaultFileNames(ext string) FileNames {
	return FileNames{
		Functions: "function." + ext,
		Colors:    "color_define." + ext,
		Types:     "types." + ext,
	}
}

// Options control a generation run
type Options struct {
	// PackageName is written into the "automatically generated by" header
	PackageName string

	// GeneratorID names the tool build in a metadata line; empty omits the line
	GeneratorID string

	// UpstreamVersion is the described library version; empty omits the line
	UpstreamVersion string

	// Files are the unit file names
	Files FileNames

	// Verbosity gates per-declaration trace logging
	Verbosity int
}
