package driven

import (
	"context"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
)

// TemplateStore handles template persistence (PostgreSQL)
type TemplateStore interface {
	// Save stores a template revision
	Save(ctx context.Context, tpl *domain.Template) error

	// Get retrieves a template with its raw bytes
	Get(ctx context.Context, id string) (*domain.Template, error)

	// List retrieves all templates without raw bytes
	List(ctx context.Context) ([]*domain.Template, error)

	// Delete removes a template
	Delete(ctx context.Context, id string) error
}

// TemplateCache fronts the TemplateStore with a TTL cache (Redis).
// A miss is not an error; callers fall through to the store.
type TemplateCache interface {
	// Get returns the cached template bytes, or nil on a miss
	Get(ctx context.Context, id string) ([]byte, error)

	// Set caches template bytes with a TTL
	Set(ctx context.Context, id string, data []byte, ttl time.Duration) error

	// Invalidate drops a cached template after an upload
	Invalidate(ctx context.Context, id string) error
}
