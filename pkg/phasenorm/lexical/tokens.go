// Package lexical rewrites phase and property names word by word: Greek
// letter spellings, stop words and element names.
package lexical

import (
	"strings"

	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

// Tokenizer splits a field into words and applies a stop-word pair.
type Tokenizer struct {
	stops vocab.Stops
	seps  string
}

// NewTokenizer splits on any byte of seps.
func NewTokenizer(stops vocab.Stops, seps string) *Tokenizer {
	return &Tokenizer{stops: stops, seps: seps}
}

// Split breaks text into words, discarding empty ones.
func (t *Tokenizer) Split(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(t.seps, r)
	})
}

// HardStop returns the first word that is a hard stop, compared lowercased.
func (t *Tokenizer) HardStop(words []string) (string, bool) {
	for _, w := range words {
		if t.stops.Hard.Has(strings.ToLower(w)) {
			return w, true
		}
	}
	return "", false
}

// RemoveSoft drops every word that exactly matches a soft stop.
func (t *Tokenizer) RemoveSoft(words []string) []string {
	kept := words[:0:0]
	for _, w := range words {
		if !t.stops.Soft.Has(w) {
			kept = append(kept, w)
		}
	}
	return kept
}

// Join rebuilds the field from words.
func Join(words []string) string {
	return strings.TrimSpace(strings.Join(words, " "))
}
