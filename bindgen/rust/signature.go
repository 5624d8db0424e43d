package rust

import (
	"strings"

	"github.com/teranos/rsbind/apidesc"
	"github.com/teranos/rsbind/bindgen/ctype"
	"github.com/teranos/rsbind/logger"
)

// Param is one parameter of a generated wrapper
type Param struct {
	// Name is the snake_case, reserved-word-safe name
	Name string
	// Type is the translated Rust type
	Type string
	// CType is the original C type string
	CType string
}

// Signature is a generated wrapper around one native function
type Signature struct {
	// Name is the public snake_case identifier
	Name string
	// Symbol is the native symbol, verbatim
	Symbol string
	// Doc is the description, verbatim
	Doc string
	// Params are the retained parameters in declared order
	Params []Param
	// Return is the translated return type, empty for void
	Return string
	// CallArgs are the forwarded arguments in declared order: the parameter
	// names, with string parameters wrapped in the profile's string helper
	CallArgs []string
	// Elided counts dropped variadic markers
	Elided int
}

// Signature builds the wrapper signature for fn
func (g *Generator) Signature(fn apidesc.Function) Signature {
	sig := Signature{
		Name:   snake(fn.Name),
		Symbol: fn.Name,
		Doc:    fn.Description,
	}

	used := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		// The variadic marker leaves both the parameter list and the call
		if p.IsVariadic() {
			sig.Elided++
			continue
		}

		name := g.profile.Rename(snake(p.Name))
		for used[name] {
			name += g.profile.RenameSuffix
		}
		used[name] = true

		param := Param{
			Name:  name,
			Type:  g.translate(fn.Name, p.Type),
			CType: p.Type,
		}
		arg := name
		if g.profile.StringParams && isCString(ctype.Parse(p.Type)) {
			param.Type = "&str"
			arg = g.profile.StringHelper + "(" + name + ")"
		}
		sig.Params = append(sig.Params, param)
		sig.CallArgs = append(sig.CallArgs, arg)
	}

	if strings.TrimSpace(fn.ReturnType) != "void" {
		sig.Return = g.translate(fn.Name, fn.ReturnType)
	}
	return sig
}

// translate renders one C type of fn, logging it at trace verbosity
func (g *Generator) translate(fnName, cType string) string {
	out := g.translator.Translate(cType).String()
	if logger.ShouldOutput(g.verbosity, logger.OutputTranslations) {
		parsed := ctype.Parse(cType)
		g.log.Debugw("Translated type",
			logger.FieldFunction, fnName,
			logger.FieldCType, cType,
			logger.FieldTarget, out,
			"pointer_depth", ctype.PointerDepth(parsed),
			"base", ctype.BaseName(parsed),
		)
	}
	return out
}

// isCString reports a single pointer to const char, e.g. `const char *`
func isCString(t ctype.Type) bool {
	p, ok := t.(ctype.Pointer)
	if !ok || ctype.PointerDepth(t) != 1 {
		return false
	}
	_, constElem := p.Elem.(ctype.Const)
	return constElem && ctype.BaseName(t) == "char"
}

// StringHelper renders the &str to *const c_char conversion used by
// string parameters. The CString is leaked; the pointer stays valid after the call.
func StringHelper(name string) string {
	return "pub fn " + name + "(s: &str) -> *const std::os::raw::c_char { " +
		"let c_string = std::ffi::CString::new(s).unwrap(); " +
		"let ptr = c_string.as_ptr(); " +
		"std::mem::forget(c_string); " +
		"ptr }\n"
}

// IsVoid reports whether the wrapper returns nothing
func (s Signature) IsVoid() bool {
	return s.Return == ""
}

// Declaration renders `pub fn name(a: T) -> R` without a body
func (s Signature) Declaration() string {
	var sb strings.Builder
	sb.WriteString("pub fn ")
	sb.WriteString(s.Name)
	sb.WriteString("(")
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type)
	}
	sb.WriteString(")")
	if !s.IsVoid() {
		sb.WriteString(" -> ")
		sb.WriteString(s.Return)
	}
	return sb.String()
}

// Call renders the forwarded call inside its unsafe block
func (s Signature) Call(callPrefix string) string {
	return "unsafe { " + callPrefix + s.Symbol + "(" + strings.Join(s.CallArgs, ", ") + ") }"
}

// Body renders the function body contents. Non-void wrappers return explicitly.
func (s Signature) Body(callPrefix string) string {
	if s.IsVoid() {
		return s.Call(callPrefix)
	}
	return "return " + s.Call(callPrefix) + ";"
}

// RenderFunction renders the doc comment and wrapper on one line, for the
// formatter to lay out
func RenderFunction(s Signature, callPrefix string) string {
	return docComment(s.Doc) + s.Declaration() + " { " + s.Body(callPrefix) + " }\n"
}
