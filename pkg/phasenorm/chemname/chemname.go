// Package chemname canonicalizes chemical-formula phase mentions using
// synonym groups.
//
// A group lists alternative spellings of one phase; its first entry is the
// canonical display form:
//
//	[Al2Cu, CuAl2]
//	[Mg2Si, SiMg2]
//
// Groups are tried in order and each member in order. Whenever a member
// occurs as a whole word in the phase, the phase is replaced by the group's
// canonical form, prefixed with "meta-" or "doublemeta-" when the phase
// carried one or two prime marks. Later members and groups see the
// rewritten phase, so a later group can rename an earlier result.
package chemname

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/phasenorm/pkg/phasenorm/internalerr"
	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/words"
)

// Metastability prefixes.
const (
	MetaPrefix       = "meta-"
	DoubleMetaPrefix = "doublemeta-"
)

// Group is one synonym group.
type Group struct {
	Canonical string
	Names     []string // includes Canonical first

	patterns []words.Pattern
}

// Merger rewrites phases to canonical chemical names.
type Merger struct {
	groups []Group
}

// NewMerger compiles the groups. Each group must have at least one
// non-empty name.
func NewMerger(groups [][]string) (*Merger, error) {
	m := &Merger{groups: make([]Group, 0, len(groups))}
	for i, names := range groups {
		g, err := compileGroup(names)
		if err != nil {
			return nil, fmt.Errorf("chem name group %d: %w", i, err)
		}
		m.groups = append(m.groups, g)
	}
	return m, nil
}

func compileGroup(names []string) (Group, error) {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return Group{}, fmt.Errorf("%w: empty synonym group", internalerr.ErrInvalidConfig)
	}

	g := Group{Canonical: cleaned[0], Names: cleaned}
	for _, n := range cleaned {
		g.patterns = append(g.patterns, words.Word(n, false))
	}
	return g, nil
}

// Groups returns the compiled groups in order.
func (m *Merger) Groups() []Group {
	out := make([]Group, len(m.groups))
	copy(out, m.groups)
	return out
}

// Name identifies the stage in logs.
func (m *Merger) Name() string { return "chem-names" }

// Canonicalize returns the merged name for phase and whether any group
// matched.
func (m *Merger) Canonicalize(phase string) (string, bool) {
	matched := false
	for _, g := range m.groups {
		for _, p := range g.patterns {
			if p.Match(phase) {
				phase = withPrefix(phase, g.Canonical)
				matched = true
			}
		}
	}
	return phase, matched
}

// withPrefix carries the prime marks of phase over to canonical.
func withPrefix(phase, canonical string) string {
	switch {
	case strings.Contains(phase, "''"):
		return DoubleMetaPrefix + canonical
	case strings.Contains(phase, "'"):
		return MetaPrefix + canonical
	}
	return canonical
}

// Apply returns a new sequence with canonicalized phases.
func (m *Merger) Apply(in []mention.Mention) []mention.Mention {
	out := make([]mention.Mention, len(in))
	for i, rec := range in {
		c := rec.Clone()
		c.Phase, _ = m.Canonicalize(rec.Phase)
		out[i] = c
	}
	return out
}

// LoadFromYAML reads synonym groups from a YAML file.
//
// Both forms are accepted and concatenated, groups first:
//
//	groups:
//	  - [Al2Cu, CuAl2]
//	synonyms:
//	  - canonical: Mg2Si
//	    variants: [SiMg2]
//
// Names keep their case; formulas are case-sensitive.
func LoadFromYAML(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	var doc struct {
		Groups   [][]string `yaml:"groups"`
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	groups := make([][]string, 0, len(doc.Groups)+len(doc.Synonyms))
	groups = append(groups, doc.Groups...)
	for _, s := range doc.Synonyms {
		names := []string{s.Canonical}
		for _, v := range s.Variants {
			if v != s.Canonical {
				names = append(names, v)
			}
		}
		groups = append(groups, names)
	}
	return groups, nil
}
