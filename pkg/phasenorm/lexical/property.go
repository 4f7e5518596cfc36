package lexical

import (
	"strings"

	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

var propertyRewrites = strings.NewReplacer("strengthening", "hardening", "-", " ")

// PropertyNormalizer rewrites the property field of each record.
type PropertyNormalizer struct {
	words  *Tokenizer
	onDrop mention.DropFunc
}

// NewPropertyNormalizer builds the stage from the property stop words.
func NewPropertyNormalizer(stops vocab.Stops, onDrop mention.DropFunc) *PropertyNormalizer {
	return &PropertyNormalizer{
		words:  NewTokenizer(stops, " "),
		onDrop: onDrop,
	}
}

// Name identifies the stage in logs.
func (n *PropertyNormalizer) Name() string { return "property-words" }

// Normalize rewrites one property name; ok is false when the record must be
// dropped because of the hard stop word.
func (n *PropertyNormalizer) Normalize(property string) (out string, word string, ok bool) {
	words := n.words.Split(propertyRewrites.Replace(property))
	if w, hit := n.words.HardStop(words); hit {
		return "", w, false
	}
	return Join(n.words.RemoveSoft(words)), "", true
}

// Apply returns the surviving records, in order, with rewritten properties.
func (n *PropertyNormalizer) Apply(in []mention.Mention) []mention.Mention {
	out := make([]mention.Mention, 0, len(in))
	for _, m := range in {
		property, stop, ok := n.Normalize(m.Property)
		if !ok {
			if n.onDrop != nil {
				n.onDrop(m, n.Name(), "hard stop word "+stop)
			}
			continue
		}
		c := m.Clone()
		c.Property = property
		out = append(out, c)
	}
	return out
}
