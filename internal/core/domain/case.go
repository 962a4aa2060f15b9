package domain

import "time"

// CaseStatus tracks a case through its lifecycle.
type CaseStatus string

const (
	// CaseStatusDraft means the snapshot is still being assembled upstream.
	CaseStatusDraft CaseStatus = "draft"
	// CaseStatusSubmitted means the case is queued for transcription.
	CaseStatusSubmitted CaseStatus = "submitted"
	// CaseStatusTranscribed means a filled document exists for the case.
	CaseStatusTranscribed CaseStatus = "transcribed"
	// CaseStatusFailed means the last transcription aborted fatally
	// (template missing or corrupt). Per-field errors never cause this.
	CaseStatusFailed CaseStatus = "failed"
)

// Case is one accident report with its snapshot.
type Case struct {
	ID         string       `json:"id"`
	OfficeID   string       `json:"office_id"`
	TemplateID string       `json:"template_id"`
	Status     CaseStatus   `json:"status"`
	Snapshot   CaseSnapshot `json:"snapshot"`

	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	TranscribedAt *time.Time `json:"transcribed_at,omitempty"`
}

// CreateCaseRequest opens a new case.
type CreateCaseRequest struct {
	TemplateID string       `json:"template_id"`
	Snapshot   CaseSnapshot `json:"snapshot"`
}

// UpdateCaseRequest replaces the snapshot of a draft case.
type UpdateCaseRequest struct {
	Snapshot CaseSnapshot `json:"snapshot"`
}

// CaseSummary is the list view of a case (no snapshot body).
type CaseSummary struct {
	ID            string     `json:"id"`
	TemplateID    string     `json:"template_id"`
	Status        CaseStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	TranscribedAt *time.Time `json:"transcribed_at,omitempty"`
}

// ToSummary converts a Case to its list view.
func (c *Case) ToSummary() *CaseSummary {
	return &CaseSummary{
		ID:            c.ID,
		TemplateID:    c.TemplateID,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		TranscribedAt: c.TranscribedAt,
	}
}
