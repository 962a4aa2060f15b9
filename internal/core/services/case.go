package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driving"
)

// Ensure caseService implements CaseService
var _ driving.CaseService = (*caseService)(nil)

// caseService implements the CaseService interface
type caseService struct {
	caseStore     driven.CaseStore
	templateStore driven.TemplateStore
	logger        *slog.Logger
}

// NewCaseService creates a new CaseService
func NewCaseService(caseStore driven.CaseStore, templateStore driven.TemplateStore, logger *slog.Logger) driving.CaseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &caseService{
		caseStore:     caseStore,
		templateStore: templateStore,
		logger:        logger,
	}
}

// Create opens a new draft case
func (s *caseService) Create(ctx context.Context, officeID string, req domain.CreateCaseRequest) (*domain.Case, error) {
	if officeID == "" || req.TemplateID == "" {
		return nil, domain.ErrInvalidInput
	}

	// The template must exist before a case can target it
	if _, err := s.templateStore.Get(ctx, req.TemplateID); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &domain.Case{
		ID:         domain.GenerateID(),
		OfficeID:   officeID,
		TemplateID: req.TemplateID,
		Status:     domain.CaseStatusDraft,
		Snapshot:   req.Snapshot,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.caseStore.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("case created", "case_id", c.ID, "office_id", officeID, "template_id", req.TemplateID)
	return c, nil
}

// Get retrieves a case by ID
func (s *caseService) Get(ctx context.Context, id string) (*domain.Case, error) {
	return s.caseStore.Get(ctx, id)
}

// Update replaces the snapshot of a draft case
func (s *caseService) Update(ctx context.Context, id string, req domain.UpdateCaseRequest) (*domain.Case, error) {
	c, err := s.caseStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Status != domain.CaseStatusDraft {
		return nil, domain.ErrCaseNotDraft
	}

	c.Snapshot = req.Snapshot
	c.UpdatedAt = time.Now()

	if err := s.caseStore.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves cases for an office with pagination
func (s *caseService) List(ctx context.Context, officeID string, limit, offset int) ([]*domain.CaseSummary, error) {
	cases, err := s.caseStore.List(ctx, officeID, limit, offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.CaseSummary, 0, len(cases))
	for _, c := range cases {
		summaries = append(summaries, c.ToSummary())
	}
	return summaries, nil
}

// Submit moves a draft case to submitted
func (s *caseService) Submit(ctx context.Context, id string) (*domain.Case, error) {
	c, err := s.caseStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Status != domain.CaseStatusDraft {
		return nil, domain.ErrCaseNotDraft
	}

	c.Status = domain.CaseStatusSubmitted
	c.UpdatedAt = time.Now()

	if err := s.caseStore.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("case submitted", "case_id", c.ID)
	return c, nil
}

// Delete removes a case
func (s *caseService) Delete(ctx context.Context, id string) error {
	return s.caseStore.Delete(ctx, id)
}
