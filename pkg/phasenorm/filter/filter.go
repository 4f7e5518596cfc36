// Package filter removes records that carry no usable phase information or
// an unusable relationship, renames surviving phases and properties, and
// restores display names after the pipeline.
package filter

import (
	"strings"

	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

// Reason names why a record was dropped.
type Reason string

const (
	ReasonElement         Reason = "element"
	ReasonRemovedPhase    Reason = "removed-phase"
	ReasonRemovedProperty Reason = "removed-property"
	ReasonEmptyPhase      Reason = "empty-phase"
	ReasonEmptyProperty   Reason = "empty-property"
	ReasonRelationship    Reason = "relationship"
)

// Accepted relationship labels after lowercasing.
const (
	Good = "good"
	Bad  = "bad"
)

// Config holds the tables the filter reads.
type Config struct {
	Elements        vocab.Elements
	PhaseRemove     vocab.Set // lowercased
	PropertyRemove  vocab.Set // lowercased
	PhaseRenames    vocab.Map
	PropertyRenames vocab.Map
	OnDrop          mention.DropFunc
}

// Filter is the whole-field filter and rename stage.
type Filter struct {
	cfg Config
}

// New returns a Filter over cfg.
func New(cfg Config) *Filter {
	return &Filter{cfg: cfg}
}

// Name identifies the stage in logs.
func (f *Filter) Name() string { return "filter" }

// Check returns the cleaned record and "" when m survives, or the drop
// reason otherwise.
func (f *Filter) Check(m mention.Mention) (mention.Mention, Reason) {
	c := m.Clone()
	c.Phase = strings.TrimSpace(c.Phase)
	c.Property = strings.TrimSpace(c.Property)

	phaseKey := strings.ToLower(c.Phase)
	switch {
	case f.cfg.Elements.IsSymbol(c.Phase):
		return c, ReasonElement
	case f.cfg.PhaseRemove.Has(phaseKey):
		return c, ReasonRemovedPhase
	case f.cfg.PropertyRemove.Has(strings.ToLower(c.Property)):
		return c, ReasonRemovedProperty
	case c.Phase == "":
		return c, ReasonEmptyPhase
	case c.Property == "":
		return c, ReasonEmptyProperty
	}

	c.Relationship = strings.ToLower(c.Relationship)
	if c.Relationship != Good && c.Relationship != Bad {
		return c, ReasonRelationship
	}

	if v, ok := f.cfg.PhaseRenames.Lookup(c.Phase); ok {
		c.Phase = v
	}
	if v, ok := f.cfg.PropertyRenames.Lookup(c.Property); ok {
		c.Property = v
	}
	return c, ""
}

// Apply returns the surviving records in order.
func (f *Filter) Apply(in []mention.Mention) []mention.Mention {
	out := make([]mention.Mention, 0, len(in))
	for _, m := range in {
		c, reason := f.Check(m)
		if reason != "" {
			if f.cfg.OnDrop != nil {
				f.cfg.OnDrop(m, f.Name(), string(reason))
			}
			continue
		}
		out = append(out, c)
	}
	return out
}
