package lexical

import (
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

// SiKeep is the phase assigned to silicon-phase mentions so that the later
// element filter does not remove them.
const SiKeep = "si [to_keep]"

// siMarkers turn a bare "si" word into a silicon-phase mention.
var siMarkers = []string{"eutectic", "phase", "primary"}

// PhaseOptions configures a PhaseNormalizer.
type PhaseOptions struct {
	// FoldUnicode applies NFKC before any other rewrite ("Al₂Cu" → "Al2Cu").
	FoldUnicode bool
	OnDrop      mention.DropFunc
}

// PhaseNormalizer rewrites the phase field of each record.
type PhaseNormalizer struct {
	greek    *Greek
	words    *Tokenizer
	elements vocab.Elements
	fold     bool
	onDrop   mention.DropFunc
}

// NewPhaseNormalizer builds the stage from the phase stop words and the
// element-name table.
func NewPhaseNormalizer(stops vocab.Stops, elements vocab.Elements, opts PhaseOptions) *PhaseNormalizer {
	return &PhaseNormalizer{
		greek:    NewGreek(),
		words:    NewTokenizer(stops, " -"),
		elements: elements,
		fold:     opts.FoldUnicode,
		onDrop:   opts.OnDrop,
	}
}

// Name identifies the stage in logs.
func (n *PhaseNormalizer) Name() string { return "phase-words" }

// Normalize rewrites one phase name. ok is false when a hard stop word
// means the record must be dropped; word is that stop word.
func (n *PhaseNormalizer) Normalize(phase string) (out string, word string, ok bool) {
	if n.fold {
		phase = norm.NFKC.String(phase)
	}
	phase = n.greek.Rewrite(phase)

	words := n.words.Split(phase)
	if w, hit := n.words.HardStop(words); hit {
		return "", w, false
	}
	words = n.words.RemoveSoft(words)

	for i, w := range words {
		if sym, found := n.elements.Symbol(w); found {
			words[i] = sym
		}
	}

	if isSiPhase(words) {
		return SiKeep, "", true
	}
	return Join(words), "", true
}

// Apply returns the surviving records, in order, with rewritten phases.
func (n *PhaseNormalizer) Apply(in []mention.Mention) []mention.Mention {
	out := make([]mention.Mention, 0, len(in))
	for _, m := range in {
		phase, stop, ok := n.Normalize(m.Phase)
		if !ok {
			if n.onDrop != nil {
				n.onDrop(m, n.Name(), "hard stop word "+stop)
			}
			continue
		}
		c := m.Clone()
		c.Phase = phase
		out = append(out, c)
	}
	return out
}

func isSiPhase(words []string) bool {
	hasSi, hasMarker := false, false
	for _, w := range words {
		if w == "si" {
			hasSi = true
		}
		for _, mk := range siMarkers {
			if w == mk {
				hasMarker = true
			}
		}
	}
	return hasSi && hasMarker
}
