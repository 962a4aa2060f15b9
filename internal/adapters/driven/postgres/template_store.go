package postgres

import (
	"context"
	"database/sql"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore implements driven.TemplateStore using PostgreSQL
type TemplateStore struct {
	db *DB
}

// NewTemplateStore creates a new TemplateStore
func NewTemplateStore(db *DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Save stores a template revision
func (s *TemplateStore) Save(ctx context.Context, tpl *domain.Template) error {
	query := `
		INSERT INTO templates (id, name, revision, data, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			revision = EXCLUDED.revision,
			data = EXCLUDED.data,
			uploaded_at = EXCLUDED.uploaded_at
	`

	_, err := s.db.ExecContext(ctx, query,
		tpl.ID,
		tpl.Name,
		tpl.Revision,
		tpl.Data,
		tpl.UploadedAt,
	)
	return err
}

// Get retrieves a template with its raw bytes
func (s *TemplateStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	query := `
		SELECT id, name, revision, data, uploaded_at
		FROM templates
		WHERE id = $1
	`

	var tpl domain.Template
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&tpl.ID,
		&tpl.Name,
		&tpl.Revision,
		&tpl.Data,
		&tpl.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &tpl, nil
}

// List retrieves all templates including raw bytes
func (s *TemplateStore) List(ctx context.Context) ([]*domain.Template, error) {
	query := `
		SELECT id, name, revision, data, uploaded_at
		FROM templates
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		var tpl domain.Template
		err := rows.Scan(
			&tpl.ID,
			&tpl.Name,
			&tpl.Revision,
			&tpl.Data,
			&tpl.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// Delete removes a template
func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM templates WHERE id = $1`
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
