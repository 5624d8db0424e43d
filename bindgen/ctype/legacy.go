package ctype

import "strings"

// translateLegacy applies the original scan order:
//   - in a chunk longer than one character, the first `*` is always *mut and
//     every later `*` is *const iff the string contains the word const;
//   - a bare `*` chunk is *const iff the string contains the word const;
//   - qualifiers are prepended as they are found, so the last one found is outermost.
//
// `const` itself only feeds the containment check.
func (t *Translator) translateLegacy(s string) Translated {
	hasConst := containsConstWord(s)

	var (
		found []PointerKind
		words []string
	)
	for _, chunk := range strings.Fields(s) {
		if chunk == "*" {
			found = append(found, kindFor(hasConst))
			continue
		}

		first := true
		word := strings.Builder{}
		for _, r := range chunk {
			if r != star {
				word.WriteRune(r)
				continue
			}
			if first {
				found = append(found, PtrMut)
				first = false
			} else {
				found = append(found, kindFor(hasConst))
			}
		}
		if w := word.String(); w != "" && w != kwConst {
			words = append(words, w)
		}
	}

	out := Translated{Base: t.Base(strings.Join(words, " "))}
	// Newest found is outermost
	for i := len(found) - 1; i >= 0; i-- {
		out.Prefix = append(out.Prefix, found[i])
	}
	return out
}

func kindFor(hasConst bool) PointerKind {
	if hasConst {
		return PtrConst
	}
	return PtrMut
}

// containsConstWord reports whether `const` appears as a word, ignoring attached asterisks
func containsConstWord(s string) bool {
	for _, chunk := range strings.Fields(s) {
		if strings.Trim(chunk, "*") == kwConst {
			return true
		}
	}
	return false
}
