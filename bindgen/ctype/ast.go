// Package ctype parses C type strings from an API description and translates
// them into target-language type expressions.
package ctype

import "strings"

// Type is a parsed C type: Named, Const, or Pointer
type Type interface {
	// String renders the type back in C declarator order
	String() string
	isType()
}

// Named is a base type, e.g. "unsigned int" or "Vector2". Name may be empty for degenerate input.
type Named struct {
	Name string
}

// Const qualifies its element, e.g. the `const char` of `const char *`
type Const struct {
	Elem Type
}

// Pointer points at Elem. Const marks a const-qualified pointer (`char * const`).
type Pointer struct {
	Elem  Type
	Const bool
}

func (Named) isType()   {}
func (Const) isType()   {}
func (Pointer) isType() {}

func (n Named) String() string { return n.Name }

func (c Const) String() string {
	return strings.TrimSpace("const " + c.Elem.String())
}

func (p Pointer) String() string {
	s := p.Elem.String() + " *"
	if p.Const {
		s += " const"
	}
	return strings.TrimSpace(s)
}

// PointerDepth counts pointer levels, outermost first
func PointerDepth(t Type) int {
	depth := 0
	for {
		switch v := t.(type) {
		case Pointer:
			depth++
			t = v.Elem
		case Const:
			t = v.Elem
		default:
			return depth
		}
	}
}

// BaseName returns the innermost Named name
func BaseName(t Type) string {
	for {
		switch v := t.(type) {
		case Pointer:
			t = v.Elem
		case Const:
			t = v.Elem
		case Named:
			return v.Name
		default:
			return ""
		}
	}
}
