package chemname

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/phasenorm/pkg/phasenorm/internalerr"
	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
)

func TestCanonicalize(t *testing.T) {
	m, err := NewMerger([][]string{
		{"Al2Cu", "CuAl2"},
		{"Mg2Si"},
	})
	if err != nil {
		t.Fatalf("NewMerger failed: %v", err)
	}

	tests := []struct {
		in      string
		want    string
		matched bool
	}{
		{"CuAl2", "Al2Cu", true},
		{"Al2Cu", "Al2Cu", true},
		{"θ' Al2Cu", "meta-Al2Cu", true},
		{"β'' Mg2Si", "doublemeta-Mg2Si", true},
		{"Mg2Si needles", "Mg2Si", true},
		{"Al2CuMg", "Al2CuMg", false},
		{"θ'", "θ'", false},
	}
	for _, tt := range tests {
		got, matched := m.Canonicalize(tt.in)
		if got != tt.want || matched != tt.matched {
			t.Errorf("Canonicalize(%q) = %q, %v; want %q, %v", tt.in, got, matched, tt.want, tt.matched)
		}
	}
}

// Each match rewrites the phase at once; later groups are matched against
// the rewritten value and recompute the prefix from it.
func TestGroupsChainOnRewrittenPhase(t *testing.T) {
	tests := []struct {
		name   string
		groups [][]string
		in     string
		want   string
	}{
		{
			name:   "later group sees earlier result only",
			groups: [][]string{{"Al2Cu"}, {"Mg2Si"}, {"Al3Fe"}},
			in:     "Al2Cu/Mg2Si",
			want:   "Al2Cu",
		},
		{
			name:   "later group renames earlier canonical",
			groups: [][]string{{"Al2Cu", "CuAl2"}, {"θ", "Al2Cu"}},
			in:     "CuAl2",
			want:   "θ",
		},
		{
			name:   "prefix recomputed after rewrite",
			groups: [][]string{{"Al2Cu", "CuAl2"}, {"θ-phase", "Al2Cu"}},
			in:     "θ' CuAl2",
			want:   "θ-phase",
		},
		{
			name:   "canonical member keeps prefix",
			groups: [][]string{{"Al2Cu", "CuAl2"}},
			in:     "CuAl2''",
			want:   "doublemeta-Al2Cu",
		},
	}
	for _, tt := range tests {
		m, err := NewMerger(tt.groups)
		if err != nil {
			t.Fatalf("%s: NewMerger failed: %v", tt.name, err)
		}
		if got, _ := m.Canonicalize(tt.in); got != tt.want {
			t.Errorf("%s: Canonicalize(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestUnicodeWordBoundaries(t *testing.T) {
	m, err := NewMerger([][]string{{"Mg2Si"}})
	if err != nil {
		t.Fatalf("NewMerger failed: %v", err)
	}
	if got, matched := m.Canonicalize("θMg2Si"); matched || got != "θMg2Si" {
		t.Errorf("Canonicalize(θMg2Si) = %q, %v; a formula glued to a letter is not a word", got, matched)
	}
	if got, _ := m.Canonicalize("θ-Mg2Si"); got != "Mg2Si" {
		t.Errorf("Canonicalize(θ-Mg2Si) = %q, want Mg2Si", got)
	}
}

func TestNamesAreLiteral(t *testing.T) {
	m, err := NewMerger([][]string{{"Mg.Si"}})
	if err != nil {
		t.Fatalf("NewMerger failed: %v", err)
	}
	if _, matched := m.Canonicalize("MgZSi"); matched {
		t.Error("group names must not be treated as patterns")
	}
	if got, _ := m.Canonicalize("Mg.Si rods"); got != "Mg.Si" {
		t.Errorf("literal name should match, got %q", got)
	}
}

func TestEmptyGroupRejected(t *testing.T) {
	_, err := NewMerger([][]string{{"Al2Cu"}, {" ", ""}})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestApply(t *testing.T) {
	m, _ := NewMerger([][]string{{"Al2Cu", "CuAl2"}})
	in := []mention.Mention{
		{Phase: "CuAl2'", Property: "hardness"},
		{Phase: "β", Property: "hardness"},
	}
	out := m.Apply(in)
	got := []string{out[0].Phase, out[1].Phase}
	want := []string{"meta-Al2Cu", "β"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("phases = %q, want %q", got, want)
	}
	if in[0].Phase != "CuAl2'" {
		t.Error("Apply modified its input")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chemnames.yaml")
	content := `groups:
  - [Al2Cu, CuAl2]
  - [Mg2Si]
synonyms:
  - canonical: Al3Mg2
    variants: [Mg2Al3, Al3Mg2]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	groups, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}
	want := [][]string{
		{"Al2Cu", "CuAl2"},
		{"Mg2Si"},
		{"Al3Mg2", "Mg2Al3"},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("groups = %q, want %q", groups, want)
	}
}

func TestLoadFromYAMLErrors(t *testing.T) {
	_, err := LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("missing file should be ErrNotFound, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("groups: {not: [a list"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = LoadFromYAML(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("malformed YAML should be ErrInvalidConfig, got %v", err)
	}
}
