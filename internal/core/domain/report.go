package domain

import "time"

// FieldError records one field the engine could not write. The document is
// still produced; the field keeps its template default.
type FieldError struct {
	FieldID string `json:"field_id"`
	Value   string `json:"value"`
	Reason  string `json:"reason"`
}

// Truncation records a value shortened to a field's declared maximum.
// Lossy, but not a failure.
type Truncation struct {
	FieldID   string `json:"field_id"`
	MaxLength int    `json:"max_length"`
	Original  int    `json:"original_length"`
}

// TranscriptionReport is the per-run tally. For every run,
// Filled + Skipped + Errors equals the number of fields the template
// reported.
type TranscriptionReport struct {
	Filled  int `json:"filled"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`

	FieldErrors []FieldError `json:"field_errors,omitempty"`
	Truncations []Truncation `json:"truncations,omitempty"`
}

// Total is the number of fields the run visited.
func (r *TranscriptionReport) Total() int {
	return r.Filled + r.Skipped + r.Errors
}

// TranscriptionRun is one persisted engine invocation.
type TranscriptionRun struct {
	ID         string              `json:"id"`
	CaseID     string              `json:"case_id"`
	TemplateID string              `json:"template_id"`
	Report     TranscriptionReport `json:"report"`

	// Document is the filled form returned by the adapter's Save.
	Document []byte `json:"-"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
