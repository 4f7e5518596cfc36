// Package split expands compound phase and property mentions into one
// record per atomic entity.
package split

import (
	"strings"
	"unicode"

	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
)

// AndToken joins two entities inside one extracted field.
const AndToken = "&&"

// Splitter runs the four split steps in order: phase on "&&", phase on
// commas, property on "&&", property on commas.
type Splitter struct{}

// New returns a Splitter.
func New() *Splitter { return &Splitter{} }

// Name identifies the stage in logs.
func (s *Splitter) Name() string { return "split" }

// Apply returns a new sequence with every compound mention expanded in place.
func (s *Splitter) Apply(in []mention.Mention) []mention.Mention {
	out := mention.CloneAll(in)
	out = expand(out, phaseField, splitAnds)
	out = expand(out, phaseField, splitCommas)
	out = expand(out, propertyField, splitAnds)
	out = expand(out, propertyField, splitCommas)
	return out
}

// Phases runs only the two phase steps.
func Phases(in []mention.Mention) []mention.Mention {
	out := expand(mention.CloneAll(in), phaseField, splitAnds)
	return expand(out, phaseField, splitCommas)
}

// Properties runs only the two property steps.
func Properties(in []mention.Mention) []mention.Mention {
	out := expand(mention.CloneAll(in), propertyField, splitAnds)
	return expand(out, propertyField, splitCommas)
}

type field struct {
	get func(m *mention.Mention) string
	set func(m *mention.Mention, v string)
}

var (
	phaseField = field{
		get: func(m *mention.Mention) string { return m.Phase },
		set: func(m *mention.Mention, v string) { m.Phase = v },
	}
	propertyField = field{
		get: func(m *mention.Mention) string { return m.Property },
		set: func(m *mention.Mention, v string) { m.Property = v },
	}
)

// expand trims f on every record and replaces records whose value splits
// into several fragments with one clone per fragment.
func expand(in []mention.Mention, f field, splitter func(string) []string) []mention.Mention {
	out := make([]mention.Mention, 0, len(in))
	for i := range in {
		m := in[i]
		value := strings.TrimSpace(f.get(&m))
		parts := splitter(value)
		if parts == nil {
			f.set(&m, value)
			out = append(out, m)
			continue
		}
		for _, p := range parts {
			sub := m.Clone()
			f.set(&sub, strings.TrimSpace(p))
			out = append(out, sub)
		}
	}
	return out
}

// splitAnds returns nil when value holds no "&&".
func splitAnds(value string) []string {
	if !strings.Contains(value, AndToken) {
		return nil
	}
	return strings.Split(value, AndToken)
}

// splitCommas returns nil when value holds no comma. Protected commas stay
// inside their fragment; see Protected.
func splitCommas(value string) []string {
	if !strings.Contains(value, ",") {
		return nil
	}

	var parts []string
	start := 0
	for i := 0; i < len(value); i++ {
		if value[i] != ',' || Protected(value, i) {
			continue
		}
		parts = append(parts, value[start:i])
		// the separator also swallows the whitespace after the comma
		j := i + 1
		for j < len(value) && isSpace(value[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	return append(parts, value[start:])
}

// Protected reports whether the comma at index i sits inside parentheses or
// brackets. Looking right from the comma, it is protected when a ")" or "]"
// appears before any "(" or ")" other than that closer.
func Protected(value string, i int) bool {
	for j := i + 1; j < len(value); j++ {
		switch value[j] {
		case ')', ']':
			return true
		case '(':
			return false
		}
	}
	return false
}

func isSpace(b byte) bool {
	return b < unicode.MaxASCII && unicode.IsSpace(rune(b))
}
