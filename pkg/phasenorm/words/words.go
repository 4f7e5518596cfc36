// Package words matches literal text at word boundaries.
//
// A word character is any Unicode letter or number, or the underscore, so
// "θ", "é" and "₂" all continue a word. A boundary lies between a word and a
// non-word character; the start and the end of the text count as non-word.
package words

import (
	"strings"
	"unicode"
)

// IsWordRune reports whether r continues a word.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// AtBoundary reports whether position i of rs lies on a word boundary.
func AtBoundary(rs []rune, i int) bool {
	before := i > 0 && IsWordRune(rs[i-1])
	after := i < len(rs) && IsWordRune(rs[i])
	return before != after
}

// Pattern is a literal that must start on a word boundary and must either
// end on one (Word) or end off one (Prefix).
type Pattern struct {
	lit      []rune
	fold     bool
	boundary bool
}

// Word matches lit as a whole word. fold makes the comparison
// case-insensitive.
func Word(lit string, fold bool) Pattern {
	return Pattern{lit: []rune(lit), fold: fold, boundary: true}
}

// Prefix matches lit starting on a word boundary and ending where no
// boundary follows. For a literal ending in a prime mark this means the
// next character is not a word character either ("b'" in "b' phase", not
// in "b'x").
func Prefix(lit string, fold bool) Pattern {
	return Pattern{lit: []rune(lit), fold: fold, boundary: false}
}

// String returns the literal.
func (p Pattern) String() string { return string(p.lit) }

func (p Pattern) matchAt(rs []rune, i int) bool {
	end := i + len(p.lit)
	if len(p.lit) == 0 || end > len(rs) {
		return false
	}
	if !AtBoundary(rs, i) || AtBoundary(rs, end) != p.boundary {
		return false
	}
	if p.fold {
		return strings.EqualFold(string(rs[i:end]), string(p.lit))
	}
	for j, r := range p.lit {
		if rs[i+j] != r {
			return false
		}
	}
	return true
}

// Match reports whether p occurs anywhere in s.
func (p Pattern) Match(s string) bool {
	rs := []rune(s)
	for i := range rs {
		if p.matchAt(rs, i) {
			return true
		}
	}
	return false
}

// ReplaceAll replaces every non-overlapping occurrence of p, scanning left
// to right.
func (p Pattern) ReplaceAll(s, repl string) string {
	rs := []rune(s)
	var b strings.Builder
	changed := false
	for i := 0; i < len(rs); {
		if p.matchAt(rs, i) {
			b.WriteString(repl)
			i += len(p.lit)
			changed = true
			continue
		}
		b.WriteRune(rs[i])
		i++
	}
	if !changed {
		return s
	}
	return b.String()
}
