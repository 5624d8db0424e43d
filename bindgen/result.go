package bindgen

// Unit is one generated source file
type Unit struct {
	// Name identifies the unit: "functions", "colors", or "types"
	Name string
	// FileName is the file the unit is written to, e.g. "function.rs"
	FileName string
	// Text is the complete source
	Text string
	// Declarations counts the items the unit declares
	Declarations int
	// Formatted is true once the external formatter accepted the unit
	Formatted bool
}

// Unit names
const (
	UnitFunctions = "functions"
	UnitColors    = "colors"
	UnitTypes     = "types"
)

// Result holds the generated units of one run, in emission order
type Result struct {
	// Language is the target language, e.g. "rust"
	Language string

	// PackageName is written into each unit header
	PackageName string

	// Units in emission order
	Units []Unit

	// SkippedDefines counts defines that are not emitted (every non-COLOR kind)
	SkippedDefines int

	// ElidedVariadics counts variadic markers dropped from signatures
	ElidedVariadics int

	// Warnings are recoverable problems, such as a formatter failure
	Warnings []error
}

// Unit returns the unit with the given name
func (r *Result) Unit(name string) (*Unit, bool) {
	for i := range r.Units {
		if r.Units[i].Name == name {
			return &r.Units[i], true
		}
	}
	return nil, false
}

// FileNames lists unit file names in emission order
func (r *Result) FileNames() []string {
	names := make([]string, len(r.Units))
	for i, u := range r.Units {
		names[i] = u.FileName
	}
	return names
}
