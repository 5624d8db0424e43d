// Package apidesc models and loads the machine-readable description of a C API
// (the raylib_api.json shape produced by raylib's parser).
package apidesc

// Description is the parsed API description. It is immutable after Load.
type Description struct {
	Defines   []Define      `json:"defines" yaml:"defines"`
	Structs   []StructRef   `json:"structs" yaml:"structs"`
	Aliases   []AliasRef    `json:"aliases" yaml:"aliases"`
	Enums     []EnumRef     `json:"enums" yaml:"enums"`
	Callbacks []CallbackRef `json:"callbacks" yaml:"callbacks"`
	Functions []Function    `json:"functions" yaml:"functions"`
}

// Define is a symbolic #define. Value is untyped: a string, number, or nested value.
type Define struct {
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type" yaml:"type"`
	Value       interface{} `json:"value" yaml:"value"`
	Description string      `json:"description" yaml:"description"`
}

// DefineColor is the define kind emitted as color constants
const DefineColor = "COLOR"

// IsColor reports whether the define is a COLOR define
func (d Define) IsColor() bool {
	return d.Type == DefineColor
}

// Function is a native function entry. Params is nil when the function takes none.
type Function struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	ReturnType  string  `json:"returnType" yaml:"returnType"`
	Params      []Param `json:"params,omitempty" yaml:"params,omitempty"`
}

// Param is a single function parameter
type Param struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Variadic marker: a C "..." parameter
const (
	VariadicName = "args"
	VariadicType = "..."
)

// IsVariadic reports whether p is the variadic marker {name:"args", type:"..."}
func (p Param) IsVariadic() bool {
	return p.Name == VariadicName && p.Type == VariadicType
}

// StructRef names a struct declared by the API
type StructRef struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// AliasRef names a typedef alias
type AliasRef struct {
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// EnumRef names an enum
type EnumRef struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// CallbackRef names a callback typedef
type CallbackRef struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	ReturnType  string `json:"returnType" yaml:"returnType"`
}

// Stats summarises a description for progress output
type Stats struct {
	Defines   int `json:"defines"`
	Colors    int `json:"colors"`
	Functions int `json:"functions"`
	Variadic  int `json:"variadic"`
	Types     int `json:"types"`
}

// Stats counts the entries of the description
func (d *Description) Stats() Stats {
	s := Stats{
		Defines:   len(d.Defines),
		Functions: len(d.Functions),
		Types:     len(d.Structs) + len(d.Aliases) + len(d.Enums) + len(d.Callbacks),
	}
	for _, def := range d.Defines {
		if def.IsColor() {
			s.Colors++
		}
	}
	for _, fn := range d.Functions {
		for _, p := range fn.Params {
			if p.IsVariadic() {
				s.Variadic++
				break
			}
		}
	}
	return s
}

// VersionDefine is the define carrying the described library version
const VersionDefine = "RAYLIB_VERSION"

// UpstreamVersion returns the string value of the version define, if present
func (d *Description) UpstreamVersion() (string, bool) {
	for _, def := range d.Defines {
		if def.Name != VersionDefine {
			continue
		}
		if s, ok := def.Value.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
