package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driving"
	"github.com/opiekalabs/wypadek-core/internal/encoders"
	"github.com/opiekalabs/wypadek-core/internal/fieldmap"
	"github.com/opiekalabs/wypadek-core/internal/metrics"
)

// Ensure transcriptionService implements TranscriptionService
var _ driving.TranscriptionService = (*transcriptionService)(nil)

// transcriptionService drives a case snapshot into a form template. The
// loaded document's field catalog, not the registry, decides which fields
// are visited; a registry entry for a field the template dropped is
// simply never invoked.
type transcriptionService struct {
	caseStore     driven.CaseStore
	runStore      driven.RunStore
	templateStore driven.TemplateStore
	templateCache driven.TemplateCache // optional
	adapter       driven.DocumentAdapter
	taskQueue     driven.TaskQueue // optional
	registry      *fieldmap.Registry
	metrics       *metrics.Metrics // optional
	logger        *slog.Logger

	templateTTL time.Duration
}

// TranscriptionConfig wires a transcription service.
type TranscriptionConfig struct {
	CaseStore     driven.CaseStore
	RunStore      driven.RunStore
	TemplateStore driven.TemplateStore
	TemplateCache driven.TemplateCache
	Adapter       driven.DocumentAdapter
	TaskQueue     driven.TaskQueue
	Registry      *fieldmap.Registry
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	TemplateTTL   time.Duration
}

// NewTranscriptionService creates a new TranscriptionService
func NewTranscriptionService(cfg TranscriptionConfig) driving.TranscriptionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.TemplateTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &transcriptionService{
		caseStore:     cfg.CaseStore,
		runStore:      cfg.RunStore,
		templateStore: cfg.TemplateStore,
		templateCache: cfg.TemplateCache,
		adapter:       cfg.Adapter,
		taskQueue:     cfg.TaskQueue,
		registry:      cfg.Registry,
		metrics:       cfg.Metrics,
		logger:        logger,
		templateTTL:   ttl,
	}
}

// Transcribe fills the case's template and persists the run. Only a
// missing or corrupt template aborts; every per-field condition lands in
// the report instead.
func (s *transcriptionService) Transcribe(ctx context.Context, caseID string) (*domain.TranscriptionRun, error) {
	c, err := s.caseStore.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	run, err := s.execute(ctx, &c.Snapshot, c.TemplateID)
	if err != nil {
		s.metrics.ObserveFatal()
		if stErr := s.caseStore.UpdateStatus(ctx, caseID, domain.CaseStatusFailed); stErr != nil {
			s.logger.Error("failed to mark case failed", "case_id", caseID, "error", stErr)
		}
		return nil, err
	}
	run.CaseID = caseID

	if err := s.runStore.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	if err := s.caseStore.UpdateStatus(ctx, caseID, domain.CaseStatusTranscribed); err != nil {
		s.logger.Error("failed to mark case transcribed", "case_id", caseID, "error", err)
	}

	return run, nil
}

// Preview runs the engine without touching any store.
func (s *transcriptionService) Preview(ctx context.Context, snapshot *domain.CaseSnapshot, templateID string) (*domain.TranscriptionRun, error) {
	return s.execute(ctx, snapshot, templateID)
}

// Enqueue schedules a background transcription for a case.
func (s *transcriptionService) Enqueue(ctx context.Context, officeID, caseID string) (*domain.Task, error) {
	if s.taskQueue == nil {
		return nil, fmt.Errorf("%w: no task queue configured", domain.ErrInvalidInput)
	}
	if _, err := s.caseStore.Get(ctx, caseID); err != nil {
		return nil, err
	}
	task := domain.NewTranscribeTask(officeID, caseID)
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to enqueue transcription: %w", err)
	}
	return task, nil
}

// LatestRun returns the most recent run for a case.
func (s *transcriptionService) LatestRun(ctx context.Context, caseID string) (*domain.TranscriptionRun, error) {
	return s.runStore.Latest(ctx, caseID)
}

// execute is the fatal-error section of a run: template bytes, adapter
// load, field loop, save.
func (s *transcriptionService) execute(ctx context.Context, snapshot *domain.CaseSnapshot, templateID string) (*domain.TranscriptionRun, error) {
	started := time.Now()

	data, err := s.templateBytes(ctx, templateID)
	if err != nil {
		return nil, err
	}

	doc, err := s.adapter.Load(ctx, templateID, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", templateID, err)
	}

	report := s.fill(doc, snapshot)

	out, err := doc.Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	duration := time.Since(started)
	s.metrics.ObserveRun(report, duration)
	s.logger.Info("transcription complete",
		"template_id", templateID,
		"filled", report.Filled,
		"skipped", report.Skipped,
		"errors", report.Errors,
		"truncated", len(report.Truncations),
		"duration", duration,
	)

	return &domain.TranscriptionRun{
		ID:         domain.GenerateID(),
		TemplateID: templateID,
		Report:     report,
		Document:   out,
		StartedAt:  started,
		Duration:   duration,
	}, nil
}

// templateBytes resolves template bytes, preferring the cache.
func (s *transcriptionService) templateBytes(ctx context.Context, templateID string) ([]byte, error) {
	if s.templateCache != nil {
		data, err := s.templateCache.Get(ctx, templateID)
		if err != nil {
			s.logger.Warn("template cache lookup failed", "template_id", templateID, "error", err)
		} else if data != nil {
			return data, nil
		}
	}

	tpl, err := s.templateStore.Get(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", templateID, err)
	}

	if s.templateCache != nil {
		if err := s.templateCache.Set(ctx, templateID, tpl.Data, s.templateTTL); err != nil {
			s.logger.Warn("template cache store failed", "template_id", templateID, "error", err)
		}
	}
	return tpl.Data, nil
}

// fill folds the snapshot over the document's field catalog. Exactly one
// tally counter is incremented per field, so the report always satisfies
// Filled + Skipped + Errors == len(Fields()).
func (s *transcriptionService) fill(doc driven.FormDocument, snapshot *domain.CaseSnapshot) domain.TranscriptionReport {
	var report domain.TranscriptionReport

	for _, field := range doc.Fields() {
		entry, ok := s.registry.Lookup(field.ID)
		if !ok {
			// Templates legitimately carry fields the application
			// never populates.
			report.Skipped++
			continue
		}

		switch field.Kind {
		case domain.FieldText:
			s.fillText(doc, field, entry, snapshot, &report)
		case domain.FieldCheckbox:
			s.fillCheckbox(doc, field, entry, snapshot, &report)
		case domain.FieldDropdown:
			s.fillDropdown(doc, field, entry, snapshot, &report)
		default:
			s.logger.Warn("unsupported field kind", "field_id", field.ID, "kind", field.Kind)
			report.Skipped++
		}
	}

	return report
}

func (s *transcriptionService) fillText(doc driven.FormDocument, field domain.FormField, entry fieldmap.Entry, snapshot *domain.CaseSnapshot, report *domain.TranscriptionReport) {
	if entry.Text == nil {
		s.recordError(report, field.ID, "", "mapped as checkbox but template reports text")
		return
	}

	value := entry.Text(snapshot)
	if field.MaxLength > 0 {
		if n := len([]rune(value)); n > field.MaxLength {
			report.Truncations = append(report.Truncations, domain.Truncation{
				FieldID:   field.ID,
				MaxLength: field.MaxLength,
				Original:  n,
			})
			s.logger.Warn("value truncated to field maximum",
				"field_id", field.ID, "max_length", field.MaxLength, "original_length", n)
			value = encoders.Truncate(value, field.MaxLength)
		}
	}

	err := doc.SetText(field.ID, value)
	if err != nil && errors.Is(err, domain.ErrUnsupportedCharset) {
		// One retry with the diacritics stripped.
		value = encoders.Transliterate(value)
		err = doc.SetText(field.ID, value)
	}
	if err != nil {
		s.recordError(report, field.ID, value, err.Error())
		return
	}
	report.Filled++
}

func (s *transcriptionService) fillCheckbox(doc driven.FormDocument, field domain.FormField, entry fieldmap.Entry, snapshot *domain.CaseSnapshot, report *domain.TranscriptionReport) {
	if entry.Check == nil {
		s.recordError(report, field.ID, "", "mapped as text but template reports checkbox")
		return
	}

	state := entry.Check(snapshot)
	if err := doc.SetChecked(field.ID, state == encoders.Checked); err != nil {
		s.recordError(report, field.ID, state.String(), err.Error())
		return
	}
	report.Filled++
}

func (s *transcriptionService) fillDropdown(doc driven.FormDocument, field domain.FormField, entry fieldmap.Entry, snapshot *domain.CaseSnapshot, report *domain.TranscriptionReport) {
	if entry.Text == nil {
		s.recordError(report, field.ID, "", "mapped as checkbox but template reports dropdown")
		return
	}

	value := entry.Text(snapshot)
	if value == "" {
		// Nothing to select; the field keeps its template default.
		report.Filled++
		return
	}

	if err := doc.Select(field.ID, value); err != nil {
		// Never invent a default option.
		s.recordError(report, field.ID, value, err.Error())
		return
	}
	report.Filled++
}

func (s *transcriptionService) recordError(report *domain.TranscriptionReport, fieldID, value, reason string) {
	report.Errors++
	report.FieldErrors = append(report.FieldErrors, domain.FieldError{
		FieldID: fieldID,
		Value:   value,
		Reason:  reason,
	})
	s.logger.Error("field write failed", "field_id", fieldID, "value", value, "reason", reason)
}
