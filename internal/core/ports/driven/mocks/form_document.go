package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.DocumentAdapter = (*MockDocumentAdapter)(nil)
	_ driven.FormDocument    = (*MockFormDocument)(nil)
)

// MockDocumentAdapter is a mock implementation of DocumentAdapter for
// testing. Load hands out a MockFormDocument built from the configured
// field catalog.
type MockDocumentAdapter struct {
	// Fields is the catalog every loaded document reports.
	Fields []domain.FormField

	// Charset, when set, restricts text values; runes it rejects make
	// SetText fail with ErrUnsupportedCharset.
	Charset func(r rune) bool

	// LoadErr forces Load to fail.
	LoadErr error

	// LastDoc is the most recently loaded document, for assertions.
	LastDoc *MockFormDocument
}

// NewMockDocumentAdapter creates an adapter serving the given catalog.
func NewMockDocumentAdapter(fields ...domain.FormField) *MockDocumentAdapter {
	return &MockDocumentAdapter{Fields: fields}
}

func (m *MockDocumentAdapter) Load(ctx context.Context, templateID string, data []byte) (driven.FormDocument, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if len(data) == 0 {
		return nil, domain.ErrTemplateCorrupt
	}
	doc := &MockFormDocument{
		fields:     m.Fields,
		charset:    m.Charset,
		texts:      make(map[string]string),
		checks:     make(map[string]bool),
		selections: make(map[string]string),
	}
	m.LastDoc = doc
	return doc, nil
}

// MockFormDocument is a deterministic in-memory FormDocument.
type MockFormDocument struct {
	fields     []domain.FormField
	charset    func(r rune) bool
	texts      map[string]string
	checks     map[string]bool
	selections map[string]string

	// SaveErr forces Save to fail.
	SaveErr error
}

func (d *MockFormDocument) field(id string) *domain.FormField {
	for i := range d.fields {
		if d.fields[i].ID == id {
			return &d.fields[i]
		}
	}
	return nil
}

func (d *MockFormDocument) Fields() []domain.FormField {
	out := make([]domain.FormField, len(d.fields))
	copy(out, d.fields)
	return out
}

func (d *MockFormDocument) SetText(fieldID, value string) error {
	f := d.field(fieldID)
	if f == nil {
		return domain.ErrFieldNotFound
	}
	if f.Kind != domain.FieldText {
		return domain.ErrKindMismatch
	}
	if d.charset != nil {
		for _, r := range value {
			if !d.charset(r) {
				return fmt.Errorf("%w: %q", domain.ErrUnsupportedCharset, r)
			}
		}
	}
	d.texts[fieldID] = value
	return nil
}

func (d *MockFormDocument) SetChecked(fieldID string, checked bool) error {
	f := d.field(fieldID)
	if f == nil {
		return domain.ErrFieldNotFound
	}
	if f.Kind != domain.FieldCheckbox {
		return domain.ErrKindMismatch
	}
	d.checks[fieldID] = checked
	return nil
}

func (d *MockFormDocument) Select(fieldID, value string) error {
	f := d.field(fieldID)
	if f == nil {
		return domain.ErrFieldNotFound
	}
	if f.Kind != domain.FieldDropdown {
		return domain.ErrKindMismatch
	}
	if !f.HasOption(value) {
		return fmt.Errorf("%w: %q", domain.ErrOptionNotAllowed, value)
	}
	d.selections[fieldID] = value
	return nil
}

// Save serialises the written state as sorted "id=value" lines, which
// makes the output byte-stable for determinism tests.
func (d *MockFormDocument) Save(ctx context.Context) ([]byte, error) {
	if d.SaveErr != nil {
		return nil, d.SaveErr
	}
	lines := make([]string, 0, len(d.texts)+len(d.checks)+len(d.selections))
	for id, v := range d.texts {
		lines = append(lines, id+"="+v)
	}
	for id, v := range d.checks {
		lines = append(lines, fmt.Sprintf("%s=%t", id, v))
	}
	for id, v := range d.selections {
		lines = append(lines, id+"="+v)
	}
	sort.Strings(lines)
	return []byte(strings.Join(lines, "\n")), nil
}

// Text returns the value written to a text field, for assertions.
func (d *MockFormDocument) Text(fieldID string) (string, bool) {
	v, ok := d.texts[fieldID]
	return v, ok
}

// Checked returns the state written to a checkbox, for assertions.
func (d *MockFormDocument) Checked(fieldID string) (bool, bool) {
	v, ok := d.checks[fieldID]
	return v, ok
}

// Selected returns the value picked on a dropdown, for assertions.
func (d *MockFormDocument) Selected(fieldID string) (string, bool) {
	v, ok := d.selections[fieldID]
	return v, ok
}
