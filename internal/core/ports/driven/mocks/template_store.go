package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.TemplateStore = (*MockTemplateStore)(nil)
	_ driven.TemplateCache = (*MockTemplateCache)(nil)
)

// MockTemplateStore is a mock implementation of TemplateStore for testing
type MockTemplateStore struct {
	mu        sync.RWMutex
	templates map[string]*domain.Template
}

// NewMockTemplateStore creates a new MockTemplateStore
func NewMockTemplateStore() *MockTemplateStore {
	return &MockTemplateStore{templates: make(map[string]*domain.Template)}
}

func (m *MockTemplateStore) Save(ctx context.Context, tpl *domain.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[tpl.ID] = tpl
	return nil
}

func (m *MockTemplateStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *MockTemplateStore) List(ctx context.Context) ([]*domain.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Template, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

func (m *MockTemplateStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

// MockTemplateCache is a mock implementation of TemplateCache for testing
type MockTemplateCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	// Hits and Misses count lookups, for cache behaviour assertions.
	Hits   int
	Misses int
}

// NewMockTemplateCache creates a new MockTemplateCache
func NewMockTemplateCache() *MockTemplateCache {
	return &MockTemplateCache{entries: make(map[string][]byte)}
}

func (m *MockTemplateCache) Get(ctx context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[id]
	if !ok {
		m.Misses++
		return nil, nil
	}
	m.Hits++
	return data, nil
}

func (m *MockTemplateCache) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = data
	return nil
}

func (m *MockTemplateCache) Invalidate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}
