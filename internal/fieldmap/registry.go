// Package fieldmap is the only place that knows both schemas at once: the
// CaseSnapshot shape on one side and the template's field catalog on the
// other. Encoders know neither; the transcription driver consults this
// registry without ever learning what a field means.
package fieldmap

import (
	"fmt"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/encoders"
)

// TextExtractor computes the value for a text or dropdown field.
type TextExtractor func(s *domain.CaseSnapshot) string

// CheckExtractor computes the state for a checkbox field.
type CheckExtractor func(s *domain.CaseSnapshot) encoders.CheckState

// Entry binds one external field identifier to exactly one extractor.
// Kind must match what the loaded template reports for the identifier;
// a mismatch at run time is a recoverable per-field error, never fatal.
type Entry struct {
	FieldID string
	Kind    domain.FieldKind

	// Exactly one of Text / Check is set, depending on Kind.
	Text  TextExtractor
	Check CheckExtractor
}

// Registry is an immutable lookup table over entries. Templates may carry
// fields with no entry here (they stay at their defaults) and the table
// may name fields a given template revision dropped (those extractors are
// simply never invoked).
type Registry struct {
	entries map[string]Entry
}

// NewRegistry builds a registry, rejecting duplicate field identifiers.
func NewRegistry(entries []Entry) (*Registry, error) {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.FieldID == "" {
			return nil, fmt.Errorf("%w: entry with empty field id", domain.ErrInvalidInput)
		}
		if _, dup := m[e.FieldID]; dup {
			return nil, fmt.Errorf("%w: duplicate mapping for %s", domain.ErrInvalidInput, e.FieldID)
		}
		switch e.Kind {
		case domain.FieldCheckbox:
			if e.Check == nil {
				return nil, fmt.Errorf("%w: %s has no check extractor", domain.ErrInvalidInput, e.FieldID)
			}
		case domain.FieldText, domain.FieldDropdown:
			if e.Text == nil {
				return nil, fmt.Errorf("%w: %s has no text extractor", domain.ErrInvalidInput, e.FieldID)
			}
		default:
			return nil, fmt.Errorf("%w: %s has unmappable kind %s", domain.ErrInvalidInput, e.FieldID, e.Kind)
		}
		m[e.FieldID] = e
	}
	return &Registry{entries: m}, nil
}

// Lookup returns the entry for a field identifier, if one exists.
func (r *Registry) Lookup(fieldID string) (Entry, bool) {
	e, ok := r.entries[fieldID]
	return e, ok
}

// Len returns the number of mapped fields.
func (r *Registry) Len() int {
	return len(r.entries)
}

// FieldIDs returns every mapped identifier (unordered). Used by tests and
// template-revision diffing.
func (r *Registry) FieldIDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}
