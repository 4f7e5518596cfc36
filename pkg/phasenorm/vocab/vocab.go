// Package vocab holds the read-only lookup tables consumed by the
// normalization stages: stop-word sets, element names, chemical synonym
// groups, removal sets and rename maps.
//
// Every type here is immutable once built. Constructors copy their input so
// later changes by the caller cannot leak into a running pipeline.
package vocab

import (
	"sort"
	"strings"
)

// Set is an immutable string set. Membership is exact; callers decide
// whether to lowercase before asking.
type Set struct {
	terms map[string]struct{}
}

// NewSet builds a set from terms as given.
func NewSet(terms []string) Set {
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return Set{terms: m}
}

// NewFoldedSet builds a set of lowercased terms.
func NewFoldedSet(terms []string) Set {
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[strings.ToLower(t)] = struct{}{}
	}
	return Set{terms: m}
}

// Has reports exact membership.
func (s Set) Has(term string) bool {
	_, ok := s.terms[term]
	return ok
}

// Len returns the number of terms.
func (s Set) Len() int { return len(s.terms) }

// All returns the terms sorted.
func (s Set) All() []string {
	out := make([]string, 0, len(s.terms))
	for t := range s.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Map is an immutable lookup with lowercased keys.
type Map struct {
	entries map[string]string
}

// NewMap copies m, lowercasing its keys. Values are kept as given.
func NewMap(m map[string]string) Map {
	entries := make(map[string]string, len(m))
	for k, v := range m {
		entries[strings.ToLower(k)] = v
	}
	return Map{entries: entries}
}

// Lookup finds key case-insensitively.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m.entries[strings.ToLower(key)]
	return v, ok
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.entries) }

// ExactMap is an immutable lookup with case-sensitive keys.
type ExactMap struct {
	entries map[string]string
}

// NewExactMap copies m.
func NewExactMap(m map[string]string) ExactMap {
	entries := make(map[string]string, len(m))
	for k, v := range m {
		entries[k] = v
	}
	return ExactMap{entries: entries}
}

// Lookup finds key exactly.
func (m ExactMap) Lookup(key string) (string, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (m ExactMap) Len() int { return len(m.entries) }

// Each calls fn for every entry in key order.
func (m ExactMap) Each(fn func(key, value string)) {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.entries[k])
	}
}

// Elements maps element names to symbols ("aluminium" → "Al") and answers
// whether a string is a bare symbol.
type Elements struct {
	names   Map
	symbols Set // lowercased symbols
}

// NewElements builds the element table from name → symbol pairs.
func NewElements(nameToSymbol map[string]string) Elements {
	symbols := make([]string, 0, len(nameToSymbol))
	for _, sym := range nameToSymbol {
		symbols = append(symbols, sym)
	}
	return Elements{
		names:   NewMap(nameToSymbol),
		symbols: NewFoldedSet(symbols),
	}
}

// Symbol returns the symbol for an element name, case-insensitively.
func (e Elements) Symbol(name string) (string, bool) {
	return e.names.Lookup(name)
}

// IsSymbol reports whether s equals any element symbol, case-insensitively.
func (e Elements) IsSymbol(s string) bool {
	return e.symbols.Has(strings.ToLower(s))
}

// Len returns the number of element names.
func (e Elements) Len() int { return e.names.Len() }

// Stops is a hard/soft stop-word pair for one field.
type Stops struct {
	// Hard terms drop the whole record; they are compared lowercased.
	Hard Set
	// Soft terms are removed from the field; they are compared exactly.
	Soft Set
}

// NewStops builds a Stops pair. Hard terms are lowercased.
func NewStops(hard, soft []string) Stops {
	return Stops{Hard: NewFoldedSet(hard), Soft: NewSet(soft)}
}

// Tables aggregates every lookup table a pipeline needs.
type Tables struct {
	PhaseStops    Stops
	PropertyStops Stops
	Elements      Elements

	// ChemNames lists synonym groups; the first name of each group is its
	// canonical display form.
	ChemNames [][]string

	PhaseRemove     Set // lowercased
	PropertyRemove  Set // lowercased
	PhaseRenames    Map
	PropertyRenames Map

	// BetaCandidates maps a formula found in the paragraph to the phase name
	// an ambiguous "β" resolves to.
	BetaCandidates ExactMap
	// ReverseNames restores display names after normalization.
	ReverseNames ExactMap
}

// Stats summarizes table sizes.
type Stats struct {
	PhaseHardStops    int
	PhaseSoftStops    int
	PropertyHardStops int
	PropertySoftStops int
	Elements          int
	ChemGroups        int
	PhaseRemove       int
	PropertyRemove    int
	PhaseRenames      int
	PropertyRenames   int
	BetaCandidates    int
	ReverseNames      int
}

// Stats returns table sizes.
func (t *Tables) Stats() Stats {
	return Stats{
		PhaseHardStops:    t.PhaseStops.Hard.Len(),
		PhaseSoftStops:    t.PhaseStops.Soft.Len(),
		PropertyHardStops: t.PropertyStops.Hard.Len(),
		PropertySoftStops: t.PropertyStops.Soft.Len(),
		Elements:          t.Elements.Len(),
		ChemGroups:        len(t.ChemNames),
		PhaseRemove:       t.PhaseRemove.Len(),
		PropertyRemove:    t.PropertyRemove.Len(),
		PhaseRenames:      t.PhaseRenames.Len(),
		PropertyRenames:   t.PropertyRenames.Len(),
		BetaCandidates:    t.BetaCandidates.Len(),
		ReverseNames:      t.ReverseNames.Len(),
	}
}
