package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RunStore = (*RunStore)(nil)

// RunStore implements driven.RunStore using PostgreSQL. The report is
// stored as JSONB, the filled document as a BYTEA blob.
type RunStore struct {
	db *DB
}

// NewRunStore creates a new RunStore
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// Save stores a transcription run
func (s *RunStore) Save(ctx context.Context, run *domain.TranscriptionRun) error {
	report, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO transcription_runs (id, case_id, template_id, report, document, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.db.ExecContext(ctx, query,
		run.ID,
		run.CaseID,
		run.TemplateID,
		report,
		run.Document,
		run.StartedAt,
		run.Duration.Milliseconds(),
	)
	return err
}

// Get retrieves a run by ID
func (s *RunStore) Get(ctx context.Context, id string) (*domain.TranscriptionRun, error) {
	query := `
		SELECT id, case_id, template_id, report, document, started_at, duration_ms
		FROM transcription_runs
		WHERE id = $1
	`
	return s.scanRun(s.db.QueryRowContext(ctx, query, id))
}

// Latest retrieves the most recent run for a case
func (s *RunStore) Latest(ctx context.Context, caseID string) (*domain.TranscriptionRun, error) {
	query := `
		SELECT id, case_id, template_id, report, document, started_at, duration_ms
		FROM transcription_runs
		WHERE case_id = $1
		ORDER BY started_at DESC
		LIMIT 1
	`
	return s.scanRun(s.db.QueryRowContext(ctx, query, caseID))
}

// ListByCase retrieves runs for a case, newest first
func (s *RunStore) ListByCase(ctx context.Context, caseID string, limit int) ([]*domain.TranscriptionRun, error) {
	query := `
		SELECT id, case_id, template_id, report, document, started_at, duration_ms
		FROM transcription_runs
		WHERE case_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, query, caseID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.TranscriptionRun
	for rows.Next() {
		run, err := scanRunRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// Purge removes runs older than the retention window
func (s *RunStore) Purge(ctx context.Context, olderThanDays int) (int, error) {
	query := `DELETE FROM transcription_runs WHERE started_at < $1`
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)

	result, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rowsAffected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *RunStore) scanRun(row *sql.Row) (*domain.TranscriptionRun, error) {
	run, err := scanRunRow(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func scanRunRow(row rowScanner) (*domain.TranscriptionRun, error) {
	var run domain.TranscriptionRun
	var report []byte
	var durationMS int64

	err := row.Scan(
		&run.ID,
		&run.CaseID,
		&run.TemplateID,
		&report,
		&run.Document,
		&run.StartedAt,
		&durationMS,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(report, &run.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}
