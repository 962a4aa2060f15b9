package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driving"
)

// Ensure templateService implements TemplateService
var _ driving.TemplateService = (*templateService)(nil)

// templateService implements the TemplateService interface
type templateService struct {
	templateStore driven.TemplateStore
	templateCache driven.TemplateCache // optional
	logger        *slog.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateStore driven.TemplateStore, templateCache driven.TemplateCache, logger *slog.Logger) driving.TemplateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &templateService{
		templateStore: templateStore,
		templateCache: templateCache,
		logger:        logger,
	}
}

// Upload stores a new template revision and drops any cached copy
func (s *templateService) Upload(ctx context.Context, id, name string, data []byte) (*domain.Template, error) {
	if id == "" || name == "" || len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}

	revision := 1
	if prev, err := s.templateStore.Get(ctx, id); err == nil {
		revision = prev.Revision + 1
	}

	tpl := &domain.Template{
		ID:         id,
		Name:       name,
		Revision:   revision,
		Data:       data,
		UploadedAt: time.Now(),
	}

	if err := s.templateStore.Save(ctx, tpl); err != nil {
		return nil, err
	}

	// Stale bytes in the cache would fill old field layouts
	if s.templateCache != nil {
		if err := s.templateCache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("template cache invalidation failed", "template_id", id, "error", err)
		}
	}

	s.logger.Info("template uploaded", "template_id", id, "revision", revision, "size", len(data))
	return tpl, nil
}

// Get retrieves a template with its raw bytes
func (s *templateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	return s.templateStore.Get(ctx, id)
}

// List retrieves all template summaries
func (s *templateService) List(ctx context.Context) ([]*domain.TemplateSummary, error) {
	templates, err := s.templateStore.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.TemplateSummary, 0, len(templates))
	for _, t := range templates {
		summaries = append(summaries, t.ToSummary())
	}
	return summaries, nil
}

// Delete removes a template and its cached bytes
func (s *templateService) Delete(ctx context.Context, id string) error {
	if err := s.templateStore.Delete(ctx, id); err != nil {
		return err
	}
	if s.templateCache != nil {
		_ = s.templateCache.Invalidate(ctx, id)
	}
	return nil
}
