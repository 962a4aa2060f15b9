package driven

import (
	"context"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
)

// CaseStore handles case persistence (PostgreSQL)
type CaseStore interface {
	// Save creates or updates a case
	Save(ctx context.Context, c *domain.Case) error

	// Get retrieves a case by ID
	Get(ctx context.Context, id string) (*domain.Case, error)

	// List retrieves cases for an office with pagination, newest first
	List(ctx context.Context, officeID string, limit, offset int) ([]*domain.Case, error)

	// ListByStatus retrieves cases in a given status for an office
	ListByStatus(ctx context.Context, officeID string, status domain.CaseStatus, limit, offset int) ([]*domain.Case, error)

	// UpdateStatus moves a case to a new status
	UpdateStatus(ctx context.Context, id string, status domain.CaseStatus) error

	// Delete deletes a case
	Delete(ctx context.Context, id string) error

	// Count returns the total case count for an office
	Count(ctx context.Context, officeID string) (int, error)
}

// RunStore persists transcription runs and their output documents
// (PostgreSQL)
type RunStore interface {
	// Save stores a completed run together with its document bytes
	Save(ctx context.Context, run *domain.TranscriptionRun) error

	// Get retrieves a run by ID, including document bytes
	Get(ctx context.Context, id string) (*domain.TranscriptionRun, error)

	// Latest retrieves the most recent run for a case
	Latest(ctx context.Context, caseID string) (*domain.TranscriptionRun, error)

	// ListByCase retrieves runs for a case, newest first, without
	// document bytes
	ListByCase(ctx context.Context, caseID string, limit int) ([]*domain.TranscriptionRun, error)

	// Purge removes runs older than the given number of days.
	// Returns the number of runs removed.
	Purge(ctx context.Context, olderThanDays int) (int, error)
}
