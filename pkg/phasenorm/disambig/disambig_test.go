package disambig

import (
	"reflect"
	"testing"

	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

var candidates = vocab.NewExactMap(map[string]string{
	"Mg2Si":  "β-Mg2Si",
	"Al3Mg2": "β-Al3Mg2",
})

func TestExtractFormulas(t *testing.T) {
	got := ExtractFormulas("The Al2Cu forms in AA2024 with MgZn2.")
	want := []string{"Al2Cu", "AA2024", "MgZn2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractFormulas = %q, want %q", got, want)
	}
}

func TestExtractFormulasWordBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"θMg2Si and Al3Mg2", []string{"Al3Mg2"}},
		{"Mg2Siθ", nil},
		{"(Mg2Si)", []string{"Mg2Si"}},
		{"β-Mg2Si", []string{"Mg2Si"}},
		{"Mg2Si_x", nil},
		{"The end", nil},
		{"AlMg", []string{"AlMg"}},
	}
	for _, tt := range tests {
		if got := ExtractFormulas(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExtractFormulas(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	d := New(candidates, Options{})
	tests := []struct {
		paragraph string
		want      string
	}{
		{"Needles of Mg2Si formed during ageing.", "β-Mg2Si"},
		{"The Al3Mg2 phase decorates grain boundaries.", "β-Al3Mg2"},
		{"Both Mg2Si and Al3Mg2 were observed.", Unknown},
		{"No formula here.", Unknown},
		{"Mg2Si2 is not Mg2Si's twin", "β-Mg2Si"},
		{"xMg2Si", Unknown},
		{"θMg2Si next to Al3Mg2", "β-Al3Mg2"},
	}
	for _, tt := range tests {
		if got := d.Resolve(tt.paragraph); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.paragraph, got, tt.want)
		}
	}
}

func TestApplyOnlyTouchesBeta(t *testing.T) {
	d := New(candidates, Options{})
	para := "Mg2Si precipitates"
	in := []mention.Mention{
		{Phase: "β", Paragraph: para},
		{Phase: "β'", Paragraph: para},
		{Phase: "β-unknown", Paragraph: para},
		{Phase: "β", Paragraph: "nothing"},
	}
	out := d.Apply(in)

	got := make([]string, len(out))
	for i, m := range out {
		got[i] = m.Phase
	}
	want := []string{"β-Mg2Si", "β'", "β-unknown", Unknown}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("phases = %q, want %q", got, want)
	}
	if in[0].Phase != "β" || out[0].Paragraph != para {
		t.Error("Apply must not modify its input or the paragraph")
	}
}

func TestStripMarkup(t *testing.T) {
	para := "<p>Rods of Mg<sub>2</sub>Si were seen.</p>"

	plain := New(candidates, Options{})
	if got := plain.Resolve(para); got != Unknown {
		t.Errorf("without stripping got %q, want %q", got, Unknown)
	}

	stripped := New(candidates, Options{StripMarkup: true})
	if got := stripped.Resolve(para); got != "β-Mg2Si" {
		t.Errorf("with stripping got %q, want β-Mg2Si", got)
	}
}

func TestTextContent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Al<sub>2</sub>Cu &amp; Mg", "Al2Cu & Mg"},
		{"plain text", "plain text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TextContent(tt.in); got != tt.want {
			t.Errorf("TextContent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCacheDoesNotChangeResults(t *testing.T) {
	cached := New(candidates, Options{CacheSize: 1})
	uncached := New(candidates, Options{CacheSize: -1})

	paragraphs := []string{"Mg2Si", "Al3Mg2", "Mg2Si and Al3Mg2", "Mg2Si", "none", "Al3Mg2"}
	for _, p := range paragraphs {
		if a, b := cached.Resolve(p), uncached.Resolve(p); a != b {
			t.Errorf("Resolve(%q): cached %q, uncached %q", p, a, b)
		}
	}
}
