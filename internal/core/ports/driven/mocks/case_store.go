package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.CaseStore = (*MockCaseStore)(nil)
	_ driven.RunStore  = (*MockRunStore)(nil)
)

// MockCaseStore is a mock implementation of CaseStore for testing
type MockCaseStore struct {
	mu    sync.RWMutex
	cases map[string]*domain.Case
}

// NewMockCaseStore creates a new MockCaseStore
func NewMockCaseStore() *MockCaseStore {
	return &MockCaseStore{cases: make(map[string]*domain.Case)}
}

func (m *MockCaseStore) Save(ctx context.Context, c *domain.Case) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cases[c.ID] = c
	return nil
}

func (m *MockCaseStore) Get(ctx context.Context, id string) (*domain.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cases[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *MockCaseStore) List(ctx context.Context, officeID string, limit, offset int) ([]*domain.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Case
	for _, c := range m.cases {
		if c.OfficeID == officeID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, limit, offset), nil
}

func (m *MockCaseStore) ListByStatus(ctx context.Context, officeID string, status domain.CaseStatus, limit, offset int) ([]*domain.Case, error) {
	all, _ := m.List(ctx, officeID, 0, 0)
	var out []*domain.Case
	for _, c := range all {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return paginate(out, limit, offset), nil
}

func (m *MockCaseStore) UpdateStatus(ctx context.Context, id string, status domain.CaseStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cases[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = status
	return nil
}

func (m *MockCaseStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cases[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.cases, id)
	return nil
}

func (m *MockCaseStore) Count(ctx context.Context, officeID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.cases {
		if c.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// MockRunStore is a mock implementation of RunStore for testing
type MockRunStore struct {
	mu   sync.RWMutex
	runs map[string]*domain.TranscriptionRun
}

// NewMockRunStore creates a new MockRunStore
func NewMockRunStore() *MockRunStore {
	return &MockRunStore{runs: make(map[string]*domain.TranscriptionRun)}
}

func (m *MockRunStore) Save(ctx context.Context, run *domain.TranscriptionRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *MockRunStore) Get(ctx context.Context, id string) (*domain.TranscriptionRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *MockRunStore) Latest(ctx context.Context, caseID string) (*domain.TranscriptionRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.TranscriptionRun
	for _, r := range m.runs {
		if r.CaseID != caseID {
			continue
		}
		if latest == nil || r.StartedAt.After(latest.StartedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (m *MockRunStore) ListByCase(ctx context.Context, caseID string, limit int) ([]*domain.TranscriptionRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TranscriptionRun
	for _, r := range m.runs {
		if r.CaseID == caseID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockRunStore) Purge(ctx context.Context, olderThanDays int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	purged := 0
	for id, run := range m.runs {
		if run.StartedAt.Before(cutoff) {
			delete(m.runs, id)
			purged++
		}
	}
	return purged, nil
}
