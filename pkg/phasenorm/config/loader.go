package config

import (
	"fmt"

	"github.com/cognicore/phasenorm/pkg/phasenorm/chemname"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

// Loader loads all table files and builds the lookup tables. Every path is
// optional; a missing path yields empty tables.
type Loader struct {
	StopwordsPath string
	ElementsPath  string
	ChemNamesPath string
	MappingsPath  string
}

// Load reads all configured files and returns the tables
func (l *Loader) Load() (*vocab.Tables, error) {
	tables := &vocab.Tables{
		PhaseStops:      vocab.NewStops(nil, nil),
		PropertyStops:   vocab.NewStops(nil, nil),
		Elements:        vocab.NewElements(nil),
		PhaseRemove:     vocab.NewFoldedSet(nil),
		PropertyRemove:  vocab.NewFoldedSet(nil),
		PhaseRenames:    vocab.NewMap(nil),
		PropertyRenames: vocab.NewMap(nil),
		BetaCandidates:  vocab.NewExactMap(nil),
		ReverseNames:    vocab.NewExactMap(nil),
	}

	if l.StopwordsPath != "" {
		sw, err := LoadStopwords(l.StopwordsPath)
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
		tables.PhaseStops = vocab.NewStops(sw.Phase.Hard, sw.Phase.Soft)
		tables.PropertyStops = vocab.NewStops(sw.Property.Hard, sw.Property.Soft)
	}

	if l.ElementsPath != "" {
		el, err := LoadElements(l.ElementsPath)
		if err != nil {
			return nil, fmt.Errorf("load elements: %w", err)
		}
		tables.Elements = vocab.NewElements(el.Elements)
	}

	if l.ChemNamesPath != "" {
		groups, err := chemname.LoadFromYAML(l.ChemNamesPath)
		if err != nil {
			return nil, fmt.Errorf("load chem names: %w", err)
		}
		// compile once here so a bad group fails at load time
		if _, err := chemname.NewMerger(groups); err != nil {
			return nil, fmt.Errorf("load chem names: %w", err)
		}
		tables.ChemNames = groups
	}

	if l.MappingsPath != "" {
		mp, err := LoadMappings(l.MappingsPath)
		if err != nil {
			return nil, fmt.Errorf("load mappings: %w", err)
		}
		tables.PhaseRemove = vocab.NewFoldedSet(mp.Phase.Remove)
		tables.PropertyRemove = vocab.NewFoldedSet(mp.Property.Remove)
		tables.PhaseRenames = vocab.NewMap(mp.Phase.Rename)
		tables.PropertyRenames = vocab.NewMap(mp.Property.Rename)
		tables.BetaCandidates = vocab.NewExactMap(mp.BetaCandidates)
		tables.ReverseNames = vocab.NewExactMap(mp.Reverse)
	}

	return tables, nil
}
