package ctype

import "strings"

const (
	kwConst = "const"
	star    = '*'
)

// token is one lexical unit of a C type string
type token struct {
	text string
	// pointer is true for a `*`
	pointer bool
	// attached is true when a `*` shared its space-delimited chunk with a
	// preceding word or asterisk (`char*`, the second `*` of `**`)
	attached bool
}

// tokenize splits a C type string on spaces, then splits every `*` out of
// its chunk as its own token
func tokenize(s string) []token {
	var toks []token
	for _, chunk := range strings.Fields(s) {
		word := strings.Builder{}
		pos := 0
		flush := func() {
			if word.Len() > 0 {
				toks = append(toks, token{text: word.String()})
				word.Reset()
			}
		}
		for _, r := range chunk {
			if r == star {
				flush()
				toks = append(toks, token{text: "*", pointer: true, attached: pos > 0})
			} else {
				word.WriteRune(r)
			}
			pos++
		}
		flush()
	}
	return toks
}

// Parse builds a Type from a C type string using C declarator rules:
// base words and a leading `const` form the base, each `*` wraps the current
// type in a Pointer, and a `const` after a `*` qualifies that pointer.
// Parse never fails; degenerate input yields a Named with whatever words remain.
func Parse(s string) Type {
	var (
		words     []string
		baseConst bool
		pointers  []Pointer
	)

	for _, tok := range tokenize(s) {
		switch {
		case tok.pointer:
			pointers = append(pointers, Pointer{})
		case tok.text == kwConst:
			if len(pointers) == 0 {
				baseConst = true
			} else {
				pointers[len(pointers)-1].Const = true
			}
		default:
			words = append(words, tok.text)
		}
	}

	var t Type = Named{Name: strings.Join(words, " ")}
	if baseConst {
		t = Const{Elem: t}
	}
	for _, p := range pointers {
		p.Elem = t
		t = p
	}
	return t
}
