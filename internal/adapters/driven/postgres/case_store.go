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
var _ driven.CaseStore = (*CaseStore)(nil)

// CaseStore implements driven.CaseStore using PostgreSQL. The snapshot is
// stored as a JSONB column; the engine never queries inside it.
type CaseStore struct {
	db *DB
}

// NewCaseStore creates a new CaseStore
func NewCaseStore(db *DB) *CaseStore {
	return &CaseStore{db: db}
}

// Save creates or updates a case
func (s *CaseStore) Save(ctx context.Context, c *domain.Case) error {
	snapshot, err := json.Marshal(c.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO cases (id, office_id, template_id, status, snapshot, created_at, updated_at, transcribed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			template_id = EXCLUDED.template_id,
			status = EXCLUDED.status,
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at,
			transcribed_at = EXCLUDED.transcribed_at
	`

	_, err = s.db.ExecContext(ctx, query,
		c.ID,
		c.OfficeID,
		c.TemplateID,
		string(c.Status),
		snapshot,
		c.CreatedAt,
		c.UpdatedAt,
		NullTime(c.TranscribedAt),
	)
	return err
}

// Get retrieves a case by ID
func (s *CaseStore) Get(ctx context.Context, id string) (*domain.Case, error) {
	query := `
		SELECT id, office_id, template_id, status, snapshot, created_at, updated_at, transcribed_at
		FROM cases
		WHERE id = $1
	`

	var c domain.Case
	var snapshot []byte
	var transcribedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.OfficeID,
		&c.TemplateID,
		&c.Status,
		&snapshot,
		&c.CreatedAt,
		&c.UpdatedAt,
		&transcribedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(snapshot, &c.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	c.TranscribedAt = TimePtr(transcribedAt)
	return &c, nil
}

// List retrieves cases for an office with pagination
func (s *CaseStore) List(ctx context.Context, officeID string, limit, offset int) ([]*domain.Case, error) {
	query := `
		SELECT id, office_id, template_id, status, snapshot, created_at, updated_at, transcribed_at
		FROM cases
		WHERE office_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, query, officeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanCases(rows)
}

// ListByStatus retrieves cases in one status for an office
func (s *CaseStore) ListByStatus(ctx context.Context, officeID string, status domain.CaseStatus, limit, offset int) ([]*domain.Case, error) {
	query := `
		SELECT id, office_id, template_id, status, snapshot, created_at, updated_at, transcribed_at
		FROM cases
		WHERE office_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, query, officeID, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanCases(rows)
}

// UpdateStatus moves a case to a new status
func (s *CaseStore) UpdateStatus(ctx context.Context, id string, status domain.CaseStatus) error {
	query := `
		UPDATE cases
		SET status = $1,
		    updated_at = $2,
		    transcribed_at = CASE WHEN $1 = 'transcribed' THEN $2 ELSE transcribed_at END
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, string(status), time.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes a case and its runs (cascade)
func (s *CaseStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM cases WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Count returns the number of cases for an office
func (s *CaseStore) Count(ctx context.Context, officeID string) (int, error) {
	query := `SELECT COUNT(*) FROM cases WHERE office_id = $1`
	var count int
	err := s.db.QueryRowContext(ctx, query, officeID).Scan(&count)
	return count, err
}

func (s *CaseStore) scanCases(rows *sql.Rows) ([]*domain.Case, error) {
	var cases []*domain.Case
	for rows.Next() {
		var c domain.Case
		var snapshot []byte
		var transcribedAt sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.OfficeID,
			&c.TemplateID,
			&c.Status,
			&snapshot,
			&c.CreatedAt,
			&c.UpdatedAt,
			&transcribedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(snapshot, &c.Snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		c.TranscribedAt = TimePtr(transcribedAt)
		cases = append(cases, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cases, nil
}
