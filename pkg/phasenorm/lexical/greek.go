package lexical

import (
	"strings"

	"github.com/cognicore/phasenorm/pkg/phasenorm/words"
)

// Rule rewrites every match of Pattern with Replacement.
type Rule struct {
	Pattern     words.Pattern
	Replacement string
}

// Apply runs the rule once over s.
func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAll(s, r.Replacement)
}

// Glyphs normalizes prime and quote variants. The double forms run first so
// "″" never degrades to a single prime.
var Glyphs = strings.NewReplacer("″", "''", "′", "'", `"`, "''")

// Greek rewrites Greek-letter spellings and single-letter shorthand in a
// phase name. Word boundaries are Unicode-aware: "θeta" and "αb" are left
// alone. The zero value is not usable; call NewGreek.
type Greek struct {
	spelled   []Rule
	shorthand []Rule
}

// NewGreek builds the rule table.
func NewGreek() *Greek {
	return &Greek{
		spelled: []Rule{
			wordRule("beta", "β"),
			wordRule("delta", "δ"),
			wordRule("eta", "η"),
			wordRule("theta", "θ"),
		},
		shorthand: shorthandRules(),
	}
}

// Rewrite applies glyph normalization and then every rule in order.
func (g *Greek) Rewrite(s string) string {
	s = Glyphs.Replace(s)
	for _, r := range g.spelled {
		s = r.Apply(s)
	}
	for _, r := range g.shorthand {
		s = r.Apply(s)
	}
	return s
}

// Rules returns the shorthand table in application order.
func (g *Greek) Rules() []Rule {
	out := make([]Rule, len(g.shorthand))
	copy(out, g.shorthand)
	return out
}

func wordRule(word, repl string) Rule {
	return Rule{Pattern: words.Word(word, true), Replacement: repl}
}

// shorthandRules builds, per letter family, the double-prime then the
// single-prime forms (each with and without a space before the prime).
// Only "b" has a bare-letter rule and it runs last.
func shorthandRules() []Rule {
	families := []struct {
		letter string
		greek  string
	}{
		{"b", "β"},
		{"d", "δ"},
		{"e", "η"},
		{"th", "θ"},
	}

	var rules []Rule
	for _, f := range families {
		for _, primes := range []string{"''", "'"} {
			for _, sep := range []string{"", " "} {
				rules = append(rules, Rule{
					Pattern:     words.Prefix(f.letter+sep+primes, true),
					Replacement: f.greek + primes,
				})
			}
		}
	}
	return append(rules, wordRule("b", "β"))
}
