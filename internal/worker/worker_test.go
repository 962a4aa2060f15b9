package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven/mocks"
)

// mockTranscription records Transcribe calls.
type mockTranscription struct {
	mu           sync.Mutex
	transcribed  []string
	transcribeFn func(ctx context.Context, caseID string) (*domain.TranscriptionRun, error)
}

func (m *mockTranscription) Transcribe(ctx context.Context, caseID string) (*domain.TranscriptionRun, error) {
	m.mu.Lock()
	m.transcribed = append(m.transcribed, caseID)
	m.mu.Unlock()
	if m.transcribeFn != nil {
		return m.transcribeFn(ctx, caseID)
	}
	return &domain.TranscriptionRun{ID: "run-1", CaseID: caseID}, nil
}

func (m *mockTranscription) Preview(ctx context.Context, snapshot *domain.CaseSnapshot, templateID string) (*domain.TranscriptionRun, error) {
	return nil, errors.New("not implemented")
}

func (m *mockTranscription) Enqueue(ctx context.Context, officeID, caseID string) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}

func (m *mockTranscription) LatestRun(ctx context.Context, caseID string) (*domain.TranscriptionRun, error) {
	return nil, errors.New("not implemented")
}

func (m *mockTranscription) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.transcribed))
	copy(out, m.transcribed)
	return out
}

func TestNewWorker_Defaults(t *testing.T) {
	w := NewWorker(Config{
		TaskQueue: mocks.NewMockTaskQueue(),
	})

	if w.concurrency != 1 {
		t.Errorf("expected default concurrency 1, got %d", w.concurrency)
	}
	if w.dequeueTimeout != 5 {
		t.Errorf("expected default dequeue timeout 5, got %d", w.dequeueTimeout)
	}
	if w.logger == nil {
		t.Error("expected default logger")
	}
}

func TestProcessTask_TranscribeCase(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	transcription := &mockTranscription{}

	w := NewWorker(Config{
		TaskQueue:     queue,
		Transcription: transcription,
		Logger:        slog.Default(),
	})

	task := domain.NewTranscribeTask("office-1", "case-42")
	if err := queue.Enqueue(context.Background(), task); err != nil {
		t.Fatalf("failed to enqueue: %v", err)
	}

	dequeued, _ := queue.Dequeue(context.Background())
	w.processTask(context.Background(), dequeued, w.logger)

	calls := transcription.calls()
	if len(calls) != 1 || calls[0] != "case-42" {
		t.Fatalf("expected one transcribe call for case-42, got %v", calls)
	}

	stored, err := queue.GetTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if stored.Status != domain.TaskStatusCompleted {
		t.Errorf("expected completed, got %s", stored.Status)
	}
}

func TestProcessTask_TranscribeFailureNacks(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	transcription := &mockTranscription{
		transcribeFn: func(ctx context.Context, caseID string) (*domain.TranscriptionRun, error) {
			return nil, domain.ErrTemplateCorrupt
		},
	}

	w := NewWorker(Config{
		TaskQueue:     queue,
		Transcription: transcription,
		Logger:        slog.Default(),
	})

	task := domain.NewTranscribeTask("office-1", "case-42")
	_ = queue.Enqueue(context.Background(), task)

	dequeued, _ := queue.Dequeue(context.Background())
	w.processTask(context.Background(), dequeued, w.logger)

	stored, _ := queue.GetTask(context.Background(), task.ID)
	if stored.Status != domain.TaskStatusPending {
		t.Errorf("expected pending for retry, got %s", stored.Status)
	}
	if stored.Error == "" {
		t.Error("expected failure reason recorded")
	}
}

func TestProcessTask_MissingCaseID(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	transcription := &mockTranscription{}

	w := NewWorker(Config{
		TaskQueue:     queue,
		Transcription: transcription,
		Logger:        slog.Default(),
	})

	task := domain.NewTranscribeTask("office-1", "")
	task.Payload = map[string]string{}
	_ = queue.Enqueue(context.Background(), task)

	dequeued, _ := queue.Dequeue(context.Background())
	w.processTask(context.Background(), dequeued, w.logger)

	if len(transcription.calls()) != 0 {
		t.Error("expected no transcribe call for task without case_id")
	}
}

func TestProcessTask_PurgeRuns(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	runStore := mocks.NewMockRunStore()

	// Seed an old run and a recent one
	old := &domain.TranscriptionRun{
		ID:        "run-old",
		CaseID:    "case-1",
		StartedAt: time.Now().AddDate(0, 0, -120),
	}
	recent := &domain.TranscriptionRun{
		ID:        "run-new",
		CaseID:    "case-1",
		StartedAt: time.Now(),
	}
	_ = runStore.Save(context.Background(), old)
	_ = runStore.Save(context.Background(), recent)

	w := NewWorker(Config{
		TaskQueue: queue,
		RunStore:  runStore,
		Logger:    slog.Default(),
	})

	task := &domain.Task{
		ID:          domain.GenerateID(),
		Type:        domain.TaskTypePurgeRuns,
		OfficeID:    "office-1",
		Payload:     map[string]string{"older_than_days": "90"},
		Status:      domain.TaskStatusPending,
		MaxAttempts: 1,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	_ = queue.Enqueue(context.Background(), task)

	dequeued, _ := queue.Dequeue(context.Background())
	w.processTask(context.Background(), dequeued, w.logger)

	if _, err := runStore.Get(context.Background(), "run-old"); err == nil {
		t.Error("expected old run to be purged")
	}
	if _, err := runStore.Get(context.Background(), "run-new"); err != nil {
		t.Error("expected recent run to survive")
	}

	stored, _ := queue.GetTask(context.Background(), task.ID)
	if stored.Status != domain.TaskStatusCompleted {
		t.Errorf("expected completed, got %s", stored.Status)
	}
}

func TestProcessTask_UnknownType(t *testing.T) {
	queue := mocks.NewMockTaskQueue()

	w := NewWorker(Config{
		TaskQueue: queue,
		Logger:    slog.Default(),
	})

	task := &domain.Task{
		ID:          domain.GenerateID(),
		Type:        "mystery",
		Status:      domain.TaskStatusPending,
		MaxAttempts: 1,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	_ = queue.Enqueue(context.Background(), task)

	dequeued, _ := queue.Dequeue(context.Background())
	w.processTask(context.Background(), dequeued, w.logger)

	stored, _ := queue.GetTask(context.Background(), task.ID)
	if stored.Status != domain.TaskStatusFailed {
		t.Errorf("expected failed for unknown type, got %s", stored.Status)
	}
}

func TestWorker_StartAndStop(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	transcription := &mockTranscription{}

	w := NewWorker(Config{
		TaskQueue:      queue,
		Transcription:  transcription,
		Logger:         slog.Default(),
		Concurrency:    2,
		DequeueTimeout: 1,
	})

	task := domain.NewTranscribeTask("office-1", "case-7")
	_ = queue.Enqueue(context.Background(), task)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}

	// Give the loop a moment to pick the task up
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(transcription.calls()) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	w.Stop()

	calls := transcription.calls()
	if len(calls) != 1 || calls[0] != "case-7" {
		t.Errorf("expected case-7 to be processed, got %v", calls)
	}
}

func TestWorker_Health(t *testing.T) {
	queue := mocks.NewMockTaskQueue()

	w := NewWorker(Config{
		TaskQueue: queue,
		Logger:    slog.Default(),
	})

	health := w.Health(context.Background())
	if health.Running {
		t.Error("expected not running before Start")
	}
	if !health.QueueHealth {
		t.Error("expected healthy queue")
	}
}
