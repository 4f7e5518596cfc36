// Package disambig resolves the ambiguous phase symbol "β" from the
// chemical formulas mentioned in the record's paragraph.
package disambig

import (
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"

	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
	"github.com/cognicore/phasenorm/pkg/phasenorm/words"
)

const (
	// Symbol is the phase value this stage resolves.
	Symbol = "β"
	// Unknown is assigned when zero or several candidates are present.
	Unknown = "β-unknown"

	defaultCacheSize = 4096
)

// ExtractFormulas returns every formula-like token of text ("Al2Cu",
// "MgZn", "Al"), in order of appearance. A token is a run of element-like
// units (an ASCII capital, an optional ASCII small letter, then digits)
// standing as a whole word; "θMg2Si" and "Mg2Siθ" are not formulas.
func ExtractFormulas(text string) []string {
	rs := []rune(text)
	var out []string
	for i := 0; i < len(rs); {
		if !words.AtBoundary(rs, i) {
			i++
			continue
		}
		end := formulaEnd(rs, i)
		if end > i && (end == len(rs) || !words.IsWordRune(rs[end])) {
			out = append(out, string(rs[i:end]))
			i = end
			continue
		}
		i++
	}
	return out
}

// formulaEnd returns the end of the longest run of units starting at i, or
// i when none starts there. Every unit character is a word character, so
// only the longest run can end on a word boundary.
func formulaEnd(rs []rune, i int) int {
	j := i
	for j < len(rs) && isUpper(rs[j]) {
		j++
		if j < len(rs) && isLower(rs[j]) {
			j++
		}
		for j < len(rs) && unicode.IsDigit(rs[j]) {
			j++
		}
	}
	return j
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// Options configures a Disambiguator.
type Options struct {
	// StripMarkup reads paragraphs as HTML and matches formulas against
	// their text content, so "Al<sub>2</sub>Cu" counts as "Al2Cu".
	StripMarkup bool
	// CacheSize bounds the per-paragraph formula memo; 0 uses a default,
	// negative disables it.
	CacheSize int
}

// Disambiguator maps "β" to a candidate phase name.
type Disambiguator struct {
	candidates vocab.ExactMap
	strip      bool
	cache      *lru.Cache[string, map[string]struct{}]
}

// New builds a Disambiguator from formula → phase-name candidates.
func New(candidates vocab.ExactMap, opts Options) *Disambiguator {
	d := &Disambiguator{candidates: candidates, strip: opts.StripMarkup}
	size := opts.CacheSize
	if size == 0 {
		size = defaultCacheSize
	}
	if size > 0 {
		// only fails for a non-positive size
		d.cache, _ = lru.New[string, map[string]struct{}](size)
	}
	return d
}

// Name identifies the stage in logs.
func (d *Disambiguator) Name() string { return "disambiguate" }

// Resolve returns the phase "β" resolves to given a paragraph.
func (d *Disambiguator) Resolve(paragraph string) string {
	found := d.formulas(paragraph)

	resolved, hits := "", 0
	d.candidates.Each(func(formula, name string) {
		if _, ok := found[formula]; ok {
			resolved = name
			hits++
		}
	})
	if hits != 1 {
		return Unknown
	}
	return resolved
}

// Apply returns a new sequence with every "β" phase resolved.
func (d *Disambiguator) Apply(in []mention.Mention) []mention.Mention {
	out := make([]mention.Mention, len(in))
	for i, m := range in {
		c := m.Clone()
		if c.Phase == Symbol {
			c.Phase = d.Resolve(c.Paragraph)
		}
		out[i] = c
	}
	return out
}

func (d *Disambiguator) formulas(paragraph string) map[string]struct{} {
	if d.cache != nil {
		if set, ok := d.cache.Get(paragraph); ok {
			return set
		}
	}

	text := paragraph
	if d.strip {
		text = TextContent(paragraph)
	}
	set := make(map[string]struct{})
	for _, f := range ExtractFormulas(text) {
		set[f] = struct{}{}
	}

	if d.cache != nil {
		d.cache.Add(paragraph, set)
	}
	return set
}

// TextContent returns the concatenated text nodes of an HTML fragment.
// Markup-free input is returned unchanged apart from entity decoding.
func TextContent(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF at the end of input; the tokenizer never fails on
			// malformed markup
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
