package profile

import "github.com/teranos/rsbind/bindgen/ctype"

// rustKeywords lists every strict, reserved and weak keyword of Rust
// editions 2015 through 2024
var rustKeywords = []string{
	// strict
	"as", "async", "await", "break", "const", "continue", "crate", "dyn",
	"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
	"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
	"self", "Self", "static", "struct", "super", "trait", "true", "type",
	"unsafe", "use", "where", "while",
	// reserved
	"abstract", "become", "box", "do", "final", "gen", "macro", "override",
	"priv", "try", "typeof", "unsized", "virtual", "yield",
	// weak
	"macro_rules", "union",
}

// rustBaseTypes maps C base types to Rust
var rustBaseTypes = map[string]string{
	"unsigned char":      "u8",
	"unsigned int":       "c_uint",
	"int":                "c_int",
	"long":               "c_long",
	"float":              "f32",
	"double":             "f64",
	"void":               "c_void",
	"char":               "c_char",
	"bool":               "bool",
	"short":              "c_short",
	"unsigned short":     "c_ushort",
	"unsigned long":      "c_ulong",
	"long long":          "c_longlong",
	"unsigned long long": "c_ulonglong",
}

// Rust returns the built-in profile for the raylib-rs-plain crate layout
func Rust() *Profile {
	p := &Profile{
		Language:   "rust",
		SysCrate:   "raylib_rs_plain_sys",
		CallPrefix: "rl::",
		Preamble: Preambles{
			Functions: []string{
				"use " + SysCratePlaceholder + " as rl;",
				"#[allow(unused_imports)]",
				"use rl::*;",
				"#[allow(unused_imports)]",
				"use std::os::raw::*;",
			},
			Colors: []string{
				"use " + SysCratePlaceholder + " as rl;",
				"pub use rl::Color;",
			},
			Types: []string{
				"use " + SysCratePlaceholder + " as rl;",
			},
		},
		ColorType:         "Color",
		RenameSuffix:      "_",
		PointerPolicy:     ctype.PolicyC,
		BaseTypes:         make(map[string]string, len(rustBaseTypes)),
		ReservedWords:     append([]string(nil), rustKeywords...),
		SupportedVersions: ">= 4.0.0",
		StringHelper:      "str_to_c_char",
	}
	for k, v := range rustBaseTypes {
		p.BaseTypes[k] = v
	}
	p.index()
	return p
}
