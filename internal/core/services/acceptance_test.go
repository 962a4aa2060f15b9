package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/cucumber/godog"
	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven/mocks"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driving"
	"github.com/opiekalabs/wypadek-core/internal/encoders"
	"github.com/opiekalabs/wypadek-core/internal/fieldmap"
)

// transcriptionFeature holds per-scenario state for the Gherkin suite.
type transcriptionFeature struct {
	svc       driving.TranscriptionService
	caseStore *mocks.MockCaseStore
	templates *mocks.MockTemplateStore
	adapter   *mocks.MockDocumentAdapter

	run *domain.TranscriptionRun
	err error
}

func (f *transcriptionFeature) reset() error {
	reg, err := fieldmap.NewRegistry([]fieldmap.Entry{
		{FieldID: "name", Kind: domain.FieldText, Text: func(s *domain.CaseSnapshot) string {
			return s.Personal.GivenName
		}},
		{FieldID: "surname", Kind: domain.FieldText, Text: func(s *domain.CaseSnapshot) string {
			return s.Personal.FamilyName
		}},
		{FieldID: "country", Kind: domain.FieldDropdown, Text: func(s *domain.CaseSnapshot) string {
			return s.Addresses.Residential.Country
		}},
		{FieldID: "machines", Kind: domain.FieldCheckbox, Check: func(s *domain.CaseSnapshot) encoders.CheckState {
			if s.Accident.Machinery == nil {
				return encoders.Unchecked
			}
			return encoders.Checkbox(s.Accident.Machinery.Involved)
		}},
	})
	if err != nil {
		return err
	}

	f.caseStore = mocks.NewMockCaseStore()
	f.templates = mocks.NewMockTemplateStore()
	f.adapter = mocks.NewMockDocumentAdapter(testFields()...)
	f.run = nil
	f.err = nil

	f.svc = NewTranscriptionService(TranscriptionConfig{
		CaseStore:     f.caseStore,
		RunStore:      mocks.NewMockRunStore(),
		TemplateStore: f.templates,
		TemplateCache: mocks.NewMockTemplateCache(),
		Adapter:       f.adapter,
		TaskQueue:     mocks.NewMockTaskQueue(),
		Registry:      reg,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return nil
}

func (f *transcriptionFeature) aStoredNotificationTemplate() error {
	return f.templates.Save(context.Background(), &domain.Template{
		ID:   "zus-not-1",
		Name: "Accident notification",
		Data: []byte("%template%"),
	})
}

func (f *transcriptionFeature) theStoredTemplateIsCorrupt() error {
	return f.templates.Save(context.Background(), &domain.Template{
		ID:   "zus-not-1",
		Name: "Accident notification",
		Data: nil,
	})
}

func (f *transcriptionFeature) aSubmittedCase(givenName, familyName, country string) error {
	return f.caseStore.Save(context.Background(), &domain.Case{
		ID:         "c1",
		OfficeID:   "office-1",
		TemplateID: "zus-not-1",
		Status:     domain.CaseStatusSubmitted,
		Snapshot: domain.CaseSnapshot{
			Personal: domain.PersonalData{GivenName: givenName, FamilyName: familyName},
			Addresses: domain.Addresses{
				Residential: domain.Address{Country: country},
			},
		},
	})
}

func (f *transcriptionFeature) theCaseIsTranscribed() error {
	f.run, f.err = f.svc.Transcribe(context.Background(), "c1")
	return nil
}

func (f *transcriptionFeature) theRunSucceeds() error {
	if f.err != nil {
		return fmt.Errorf("transcription failed: %w", f.err)
	}
	if f.run == nil {
		return fmt.Errorf("no run produced")
	}
	return nil
}

func (f *transcriptionFeature) transcriptionFails() error {
	if f.err == nil {
		return fmt.Errorf("expected transcription to fail, got a run")
	}
	return nil
}

func (f *transcriptionFeature) theFieldContains(fieldID, want string) error {
	got, ok := f.adapter.LastDoc.Text(fieldID)
	if !ok {
		return fmt.Errorf("field %q was never written", fieldID)
	}
	if got != want {
		return fmt.Errorf("field %q = %q, want %q", fieldID, got, want)
	}
	return nil
}

func (f *transcriptionFeature) theDropdownSelects(fieldID, want string) error {
	got, ok := f.adapter.LastDoc.Selected(fieldID)
	if !ok {
		return fmt.Errorf("dropdown %q was never selected", fieldID)
	}
	if got != want {
		return fmt.Errorf("dropdown %q = %q, want %q", fieldID, got, want)
	}
	return nil
}

func (f *transcriptionFeature) theDropdownStaysUnselected(fieldID string) error {
	if got, ok := f.adapter.LastDoc.Selected(fieldID); ok {
		return fmt.Errorf("dropdown %q = %q, want untouched", fieldID, got)
	}
	return nil
}

func (f *transcriptionFeature) theReportCountsFieldErrors(want int) error {
	if got := f.run.Report.Errors; got != want {
		return fmt.Errorf("Errors = %d, want %d: %+v", got, want, f.run.Report.FieldErrors)
	}
	return nil
}

func (f *transcriptionFeature) theReportNotesATruncationOn(fieldID string) error {
	for _, tr := range f.run.Report.Truncations {
		if tr.FieldID == fieldID {
			return nil
		}
	}
	return fmt.Errorf("no truncation recorded for %q: %+v", fieldID, f.run.Report.Truncations)
}

func initializeTranscriptionScenario(sc *godog.ScenarioContext) {
	f := &transcriptionFeature{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, f.reset()
	})

	sc.Step(`^a stored notification template$`, f.aStoredNotificationTemplate)
	sc.Step(`^the stored template is corrupt$`, f.theStoredTemplateIsCorrupt)
	sc.Step(`^a submitted case for "([^"]*)" "([^"]*)" residing in "([^"]*)"$`, f.aSubmittedCase)
	sc.Step(`^the case is transcribed$`, f.theCaseIsTranscribed)
	sc.Step(`^the run succeeds$`, f.theRunSucceeds)
	sc.Step(`^transcription fails$`, f.transcriptionFails)
	sc.Step(`^the field "([^"]*)" contains "([^"]*)"$`, f.theFieldContains)
	sc.Step(`^the dropdown "([^"]*)" selects "([^"]*)"$`, f.theDropdownSelects)
	sc.Step(`^the dropdown "([^"]*)" stays unselected$`, f.theDropdownStaysUnselected)
	sc.Step(`^the report counts (\d+) field errors?$`, f.theReportCountsFieldErrors)
	sc.Step(`^the report notes a truncation on "([^"]*)"$`, f.theReportNotesATruncationOn)
}

func TestTranscriptionFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeTranscriptionScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature suite failed")
	}
}
