package fieldmap

import (
	"errors"
	"testing"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/encoders"
)

func textEntry(id string) Entry {
	return Entry{FieldID: id, Kind: domain.FieldText, Text: func(*domain.CaseSnapshot) string {
		return "v"
	}}
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry([]Entry{textEntry("a"), textEntry("b")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", r.Len())
	}

	e, ok := r.Lookup("a")
	if !ok {
		t.Fatal("expected lookup hit for a")
	}
	if e.FieldID != "a" {
		t.Errorf("expected a, got %s", e.FieldID)
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Error("expected lookup miss for unmapped id")
	}
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Entry{textEntry("a"), textEntry("a")})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewRegistry_RejectsEmptyID(t *testing.T) {
	_, err := NewRegistry([]Entry{textEntry("")})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewRegistry_RejectsMissingExtractor(t *testing.T) {
	_, err := NewRegistry([]Entry{{FieldID: "x", Kind: domain.FieldText}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for text without extractor, got %v", err)
	}

	_, err = NewRegistry([]Entry{{FieldID: "x", Kind: domain.FieldCheckbox}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for checkbox without extractor, got %v", err)
	}
}

func TestNewRegistry_RejectsUnknownKind(t *testing.T) {
	_, err := NewRegistry([]Entry{{
		FieldID: "x",
		Kind:    domain.FieldUnknown,
		Check: func(*domain.CaseSnapshot) encoders.CheckState {
			return encoders.Unchecked
		},
	}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
