package domain

import "time"

// Template is one revision of a government form template. Data holds the
// raw bytes handed to the document adapter on load.
type Template struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Revision   int       `json:"revision"`
	Data       []byte    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// TemplateSummary is the list view of a template (no raw bytes).
type TemplateSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Revision   int       `json:"revision"`
	Size       int       `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ToSummary converts a Template to its list view.
func (t *Template) ToSummary() *TemplateSummary {
	return &TemplateSummary{
		ID:         t.ID,
		Name:       t.Name,
		Revision:   t.Revision,
		Size:       len(t.Data),
		UploadedAt: t.UploadedAt,
	}
}
