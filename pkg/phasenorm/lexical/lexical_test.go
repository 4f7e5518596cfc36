package lexical

import (
	"reflect"
	"testing"

	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

func newPhaseNormalizer(opts PhaseOptions) *PhaseNormalizer {
	stops := vocab.NewStops([]string{"unknown", "matrix"}, []string{"particles", "precipitates"})
	elements := vocab.NewElements(map[string]string{
		"aluminium": "Al",
		"copper":    "Cu",
		"silicon":   "Si",
	})
	return NewPhaseNormalizer(stops, elements, opts)
}

func TestPhaseNormalize(t *testing.T) {
	n := newPhaseNormalizer(PhaseOptions{})
	tests := []struct {
		in, want string
	}{
		{"beta", "β"},
		{"theta' precipitates", "θ'"},
		{"b''", "β''"},
		{"Al-Cu", "Al Cu"},
		{"aluminium copper", "Al Cu"},
		{"Aluminium", "Al"},
		{"θ'  particles  ", "θ'"},
		{"Particles of θ'", "Particles of θ'"},
		{"eutectic si", SiKeep},
		{"primary-si", SiKeep},
		{"si phase", SiKeep},
		{"silicon eutectic", "Si eutectic"},
		{"si", "si"},
		{"", ""},
	}
	for _, tt := range tests {
		got, _, ok := n.Normalize(tt.in)
		if !ok {
			t.Errorf("Normalize(%q) dropped the record", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPhaseHardStopDrops(t *testing.T) {
	n := newPhaseNormalizer(PhaseOptions{})
	for _, in := range []string{"unknown phase", "Unknown", "Al-matrix", "MATRIX"} {
		if _, _, ok := n.Normalize(in); ok {
			t.Errorf("Normalize(%q) should drop the record", in)
		}
	}
}

func TestPhaseApply(t *testing.T) {
	var dropped []string
	n := newPhaseNormalizer(PhaseOptions{
		OnDrop: func(m mention.Mention, stage, reason string) {
			dropped = append(dropped, m.Phase+"|"+stage+"|"+reason)
		},
	})

	in := []mention.Mention{
		{Phase: "beta", Property: "hardness", Relationship: "good"},
		{Phase: "unknown phase", Property: "hardness", Relationship: "good"},
		{Phase: "eta'", Property: "strength", Relationship: "bad"},
	}
	before := mention.CloneAll(in)

	out := n.Apply(in)
	if len(out) != 2 || out[0].Phase != "β" || out[1].Phase != "η'" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out[1].Property != "strength" || out[1].Relationship != "bad" {
		t.Errorf("other fields must be kept: %+v", out[1])
	}
	if !reflect.DeepEqual(in, before) {
		t.Error("Apply modified its input")
	}
	want := []string{"unknown phase|phase-words|hard stop word unknown"}
	if !reflect.DeepEqual(dropped, want) {
		t.Errorf("dropped = %q, want %q", dropped, want)
	}
}

func TestPhaseFoldUnicode(t *testing.T) {
	plain := newPhaseNormalizer(PhaseOptions{})
	folded := newPhaseNormalizer(PhaseOptions{FoldUnicode: true})

	if got, _, _ := plain.Normalize("Al₂Cu"); got != "Al₂Cu" {
		t.Errorf("without folding got %q", got)
	}
	if got, _, _ := folded.Normalize("Al₂Cu"); got != "Al2Cu" {
		t.Errorf("with folding got %q, want Al2Cu", got)
	}
	if got, _, _ := folded.Normalize("θ″"); got != "θ''" {
		t.Errorf("folded double prime got %q, want θ''", got)
	}
}

func TestPropertyNormalize(t *testing.T) {
	stops := vocab.NewStops([]string{"cost"}, []string{"high", "improved"})
	n := NewPropertyNormalizer(stops, nil)

	tests := []struct {
		in, want string
	}{
		{"strengthening", "hardening"},
		{"precipitation strengthening", "precipitation hardening"},
		{"age-hardening", "age hardening"},
		{"high strength", "strength"},
		{"High strength", "High strength"},
		{" improved  ductility ", "ductility"},
	}
	for _, tt := range tests {
		got, _, ok := n.Normalize(tt.in)
		if !ok || got != tt.want {
			t.Errorf("Normalize(%q) = %q, %v; want %q", tt.in, got, ok, tt.want)
		}
	}

	if _, word, ok := n.Normalize("Cost reduction"); ok || word != "Cost" {
		t.Errorf("hard stop should drop, got ok=%v word=%q", ok, word)
	}
}

func TestPropertyApplyKeepsOrder(t *testing.T) {
	n := NewPropertyNormalizer(vocab.NewStops([]string{"cost"}, nil), nil)
	in := []mention.Mention{
		{Phase: "a", Property: "strengthening"},
		{Phase: "b", Property: "cost"},
		{Phase: "c", Property: "creep-resistance"},
	}
	out := n.Apply(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].Phase != "a" || out[0].Property != "hardening" {
		t.Errorf("first = %+v", out[0])
	}
	if out[1].Phase != "c" || out[1].Property != "creep resistance" {
		t.Errorf("second = %+v", out[1])
	}
	if in[0].Property != "strengthening" {
		t.Error("Apply modified its input")
	}
}
