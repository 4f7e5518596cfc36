// Package mention defines the record that flows through every
// normalization stage and its JSON encoding.
package mention

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cognicore/phasenorm/pkg/phasenorm/internalerr"
)

// Required field names as they appear in encoded records.
const (
	FieldPhase        = "phase"
	FieldProperty     = "property"
	FieldRelationship = "relationship"
	FieldParagraph    = "paragraph"
)

// RequiredFields lists the keys every encoded record must carry, in
// validation order.
var RequiredFields = []string{FieldPhase, FieldProperty, FieldRelationship, FieldParagraph}

// Mention is one extracted (phase, property, relationship) observation
// together with the paragraph it was mined from.
type Mention struct {
	Phase        string
	Property     string
	Relationship string
	Paragraph    string

	// Extra holds every other key of the source record, verbatim.
	Extra map[string]json.RawMessage
}

// DropFunc observes a record removed by a stage. It never influences the
// stage output.
type DropFunc func(m Mention, stage, reason string)

// FieldError reports a record that violates the data contract.
type FieldError struct {
	Index   int // position in the input sequence, -1 when unknown
	Field   string
	Problem string
}

func (e *FieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("mention: field %q %s", e.Field, e.Problem)
	}
	return fmt.Sprintf("mention %d: field %q %s", e.Index, e.Field, e.Problem)
}

func (e *FieldError) Unwrap() error {
	return internalerr.ErrInvalidInput
}

// Clone returns a deep copy of m.
func (m Mention) Clone() Mention {
	out := m
	if m.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Get returns a required field by its encoded name.
func (m Mention) Get(field string) (string, bool) {
	switch field {
	case FieldPhase:
		return m.Phase, true
	case FieldProperty:
		return m.Property, true
	case FieldRelationship:
		return m.Relationship, true
	case FieldParagraph:
		return m.Paragraph, true
	}
	return "", false
}

// MarshalJSON merges the required fields with Extra into one object.
func (m Mention) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(m.Extra)+len(RequiredFields))
	for k, v := range m.Extra {
		obj[k] = v
	}
	for _, f := range RequiredFields {
		v, _ := m.Get(f)
		raw, err := marshalPlain(v)
		if err != nil {
			return nil, err
		}
		obj[f] = raw
	}
	return marshalPlain(obj)
}

// marshalPlain is json.Marshal without HTML escaping, so "&&" and "<sub>"
// survive a round trip byte for byte.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes one record. Missing or non-string required fields
// yield a *FieldError with Index -1; Decode fills in the position.
func (m *Mention) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("mention: %w: %v", internalerr.ErrInvalidInput, err)
	}

	var out Mention
	for _, f := range RequiredFields {
		raw, ok := obj[f]
		if !ok {
			return &FieldError{Index: -1, Field: f, Problem: "is missing"}
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(string(raw)) == "null" {
			return &FieldError{Index: -1, Field: f, Problem: "must be a string"}
		}
		out.set(f, s)
		delete(obj, f)
	}
	if len(obj) > 0 {
		out.Extra = obj
	}
	*m = out
	return nil
}

// FromMap builds a Mention from a loosely-typed row. Values of unknown keys
// are JSON-encoded into Extra.
func FromMap(index int, row map[string]any) (Mention, error) {
	var out Mention
	for _, f := range RequiredFields {
		v, ok := row[f]
		if !ok {
			return Mention{}, &FieldError{Index: index, Field: f, Problem: "is missing"}
		}
		s, ok := v.(string)
		if !ok {
			return Mention{}, &FieldError{Index: index, Field: f, Problem: "must be a string"}
		}
		out.set(f, s)
	}
	for k, v := range row {
		if isRequired(k) {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return Mention{}, fmt.Errorf("mention %d: encode field %q: %w", index, k, err)
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = raw
	}
	return out, nil
}

// FromMaps converts rows in order, failing on the first contract violation.
func FromMaps(rows []map[string]any) ([]Mention, error) {
	out := make([]Mention, 0, len(rows))
	for i, row := range rows {
		m, err := FromMap(i, row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// CloneAll deep-copies a sequence.
func CloneAll(in []Mention) []Mention {
	out := make([]Mention, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

func (m *Mention) set(field, value string) {
	switch field {
	case FieldPhase:
		m.Phase = value
	case FieldProperty:
		m.Property = value
	case FieldRelationship:
		m.Relationship = value
	case FieldParagraph:
		m.Paragraph = value
	}
}

func isRequired(key string) bool {
	for _, f := range RequiredFields {
		if f == key {
			return true
		}
	}
	return false
}
