package ctype

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PointerKind is a rendered pointer qualifier
type PointerKind int

const (
	PtrMut PointerKind = iota
	PtrConst
)

// String renders the qualifier as it prefixes a Rust type
func (k PointerKind) String() string {
	if k == PtrConst {
		return "*const "
	}
	return "*mut "
}

// Translated is a target type: pointer qualifiers, outermost first, then the base
type Translated struct {
	Prefix []PointerKind
	Base   string
}

// String renders the full type expression, e.g. "*mut *const c_char"
func (t Translated) String() string {
	var b strings.Builder
	for _, k := range t.Prefix {
		b.WriteString(k.String())
	}
	b.WriteString(t.Base)
	return b.String()
}

// IsPointer reports whether the type has at least one pointer level
func (t Translated) IsPointer() bool {
	return len(t.Prefix) > 0
}

// Policy selects how pointer constness is derived
type Policy string

const (
	// PolicyC follows C declarator semantics: a pointer is *const iff what it
	// points at is const-qualified
	PolicyC Policy = "c"
	// PolicyLegacy reproduces the raylib-rs-plain scan order byte for byte
	PolicyLegacy Policy = "legacy"
)

// Valid reports whether p names a known policy
func (p Policy) Valid() bool {
	return p == PolicyC || p == PolicyLegacy
}

// DefaultCacheSize bounds the translation memo
const DefaultCacheSize = 1024

// Translator maps C type strings to target types using a base-type table.
// Translation is pure, so results are memoized for the run.
type Translator struct {
	base   map[string]string
	policy Policy
	memo   *lru.Cache[string, Translated]
}

// NewTranslator creates a translator. An empty policy means PolicyC.
func NewTranslator(base map[string]string, policy Policy) *Translator {
	if policy == "" {
		policy = PolicyC
	}
	// lru.New only fails for a non-positive size
	memo, _ := lru.New[string, Translated](DefaultCacheSize)
	return &Translator{base: base, policy: policy, memo: memo}
}

// Policy returns the active pointer policy
func (t *Translator) Policy() Policy {
	return t.policy
}

// Translate converts a C type string. Unknown base types pass through verbatim.
// It never fails; callers must treat the returned Prefix as read-only.
func (t *Translator) Translate(s string) Translated {
	if cached, ok := t.memo.Get(s); ok {
		return cached
	}

	var out Translated
	if t.policy == PolicyLegacy {
		out = t.translateLegacy(s)
	} else {
		out = t.Lower(Parse(s))
	}

	t.memo.Add(s, out)
	return out
}

// Lower renders a parsed Type under C rules
func (t *Translator) Lower(ty Type) Translated {
	var out Translated
	for {
		switch v := ty.(type) {
		case Pointer:
			if pointsAtConst(v) {
				out.Prefix = append(out.Prefix, PtrConst)
			} else {
				out.Prefix = append(out.Prefix, PtrMut)
			}
			ty = v.Elem
		case Const:
			// No const value types in the target: render the element
			ty = v.Elem
		case Named:
			out.Base = t.Base(v.Name)
			return out
		default:
			return out
		}
	}
}

// pointsAtConst reports whether p's element is const-qualified, either a
// const base or a const pointer (`char * const *`)
func pointsAtConst(p Pointer) bool {
	switch e := p.Elem.(type) {
	case Const:
		return true
	case Pointer:
		return e.Const
	}
	return false
}

// Base resolves a base-type key through the table, passing unknown keys through
func (t *Translator) Base(key string) string {
	if mapped, ok := t.base[key]; ok {
		return mapped
	}
	return key
}

// CacheLen reports how many distinct type strings have been translated
func (t *Translator) CacheLen() int {
	return t.memo.Len()
}
