// Package config reads the lookup tables from YAML files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/phasenorm/pkg/phasenorm/internalerr"
)

// StopList is a hard/soft stop-word pair for one field.
type StopList struct {
	Hard []string `yaml:"hard"`
	Soft []string `yaml:"soft"`
}

// Stopwords represents the stop-word file
//
//	phase:
//	  hard: [unknown, matrix]
//	  soft: [phase, particles]
//	property:
//	  hard: [cost]
//	  soft: [high, improved]
type Stopwords struct {
	Phase    StopList `yaml:"phase"`
	Property StopList `yaml:"property"`
}

// LoadStopwords loads stop words from a YAML file
func LoadStopwords(path string) (*Stopwords, error) {
	var sw Stopwords
	if err := readYAML(path, &sw); err != nil {
		return nil, err
	}
	return &sw, nil
}

// Elements represents the element-name file
//
//	elements:
//	  aluminium: Al
//	  copper: Cu
type Elements struct {
	Elements map[string]string `yaml:"elements"`
}

// LoadElements loads the element-name → symbol map from a YAML file
func LoadElements(path string) (*Elements, error) {
	var el Elements
	if err := readYAML(path, &el); err != nil {
		return nil, err
	}
	return &el, nil
}

// FieldMappings holds the removal set and rename map of one field.
type FieldMappings struct {
	Remove []string          `yaml:"remove"`
	Rename map[string]string `yaml:"rename"`
}

// Mappings represents the mapping file
//
//	phase:
//	  remove: [precipitate, matrix]
//	  rename: {"θ'": "θ' (Al2Cu)"}
//	property:
//	  remove: [properties]
//	  rename: {yield stress: yield strength}
//	beta_candidates:
//	  Mg2Si: β (Mg2Si)
//	  Al3Mg2: β (Al3Mg2)
//	reverse:
//	  si [to_keep]: Si
type Mappings struct {
	Phase          FieldMappings     `yaml:"phase"`
	Property       FieldMappings     `yaml:"property"`
	BetaCandidates map[string]string `yaml:"beta_candidates"`
	Reverse        map[string]string `yaml:"reverse"`
}

// LoadMappings loads removal sets and rename maps from a YAML file
func LoadMappings(path string) (*Mappings, error) {
	var mp Mappings
	if err := readYAML(path, &mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	return nil
}
