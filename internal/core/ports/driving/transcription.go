package driving

import (
	"context"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
)

// TranscriptionService drives one snapshot into one form template.
type TranscriptionService interface {
	// Transcribe fills the template with the snapshot and returns the
	// persisted run (document bytes plus tally). The only error it can
	// return is a fatal one: template missing or corrupt. Per-field
	// conditions never surface as errors; they land in the report.
	Transcribe(ctx context.Context, caseID string) (*domain.TranscriptionRun, error)

	// Preview runs the engine without persisting anything. Used by
	// reviewers to inspect the tally before submitting a case.
	Preview(ctx context.Context, snapshot *domain.CaseSnapshot, templateID string) (*domain.TranscriptionRun, error)

	// Enqueue schedules a background transcription for a case.
	Enqueue(ctx context.Context, officeID, caseID string) (*domain.Task, error)

	// LatestRun returns the most recent run for a case.
	LatestRun(ctx context.Context, caseID string) (*domain.TranscriptionRun, error)
}
