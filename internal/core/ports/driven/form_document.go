package driven

import (
	"context"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
)

// DocumentAdapter opens a form template into an editable field catalog.
// It is the boundary to the AcroForm tooling; a load failure is the only
// fatal error in a transcription run.
type DocumentAdapter interface {
	// Load parses template bytes into a writable document. Returns
	// domain.ErrTemplateCorrupt (possibly wrapped) if the bytes cannot
	// be parsed.
	Load(ctx context.Context, templateID string, data []byte) (FormDocument, error)
}

// FormDocument is one loaded template instance. The driver is its only
// writer; implementations need not be safe for concurrent use.
type FormDocument interface {
	// Fields reports every fillable field the template actually has.
	// This catalog, not the mapping registry, is the ground truth for
	// which fields exist.
	Fields() []domain.FormField

	// SetText writes a text field. Returns domain.ErrUnsupportedCharset
	// if the value has code points outside the form's character set,
	// domain.ErrFieldNotFound or domain.ErrKindMismatch on bad targets.
	SetText(fieldID, value string) error

	// SetChecked sets a checkbox to a definite state.
	SetChecked(fieldID string, checked bool) error

	// Select picks a dropdown value. Returns domain.ErrOptionNotAllowed
	// if the value is not among the field's declared options.
	Select(fieldID, value string) error

	// Save serialises the mutated document back to bytes.
	Save(ctx context.Context) ([]byte, error)
}
