package filter

import (
	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

// ReverseMapper gives certain normalized phases their original display
// names back.
type ReverseMapper struct {
	names vocab.ExactMap
}

// NewReverseMapper maps normalized phase → display name.
func NewReverseMapper(names vocab.ExactMap) *ReverseMapper {
	return &ReverseMapper{names: names}
}

// Name identifies the stage in logs.
func (r *ReverseMapper) Name() string { return "reverse-names" }

// Apply replaces every phase that is a key of the map.
func (r *ReverseMapper) Apply(in []mention.Mention) []mention.Mention {
	out := make([]mention.Mention, len(in))
	for i, m := range in {
		c := m.Clone()
		if v, ok := r.names.Lookup(c.Phase); ok {
			c.Phase = v
		}
		out[i] = c
	}
	return out
}
