package driving

import (
	"context"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
)

// CaseService manages accident cases
type CaseService interface {
	// Create opens a new draft case
	Create(ctx context.Context, officeID string, req domain.CreateCaseRequest) (*domain.Case, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, id string) (*domain.Case, error)

	// Update replaces the snapshot of a draft case
	Update(ctx context.Context, id string, req domain.UpdateCaseRequest) (*domain.Case, error)

	// List retrieves cases for an office with pagination
	List(ctx context.Context, officeID string, limit, offset int) ([]*domain.CaseSummary, error)

	// Submit moves a draft case to submitted
	Submit(ctx context.Context, id string) (*domain.Case, error)

	// Delete removes a case
	Delete(ctx context.Context, id string) error
}

// TemplateService manages form templates
type TemplateService interface {
	// Upload stores a new template revision
	Upload(ctx context.Context, id, name string, data []byte) (*domain.Template, error)

	// Get retrieves a template with its raw bytes
	Get(ctx context.Context, id string) (*domain.Template, error)

	// List retrieves all template summaries
	List(ctx context.Context) ([]*domain.TemplateSummary, error)

	// Delete removes a template
	Delete(ctx context.Context, id string) error
}
