package cache

import (
	"context"
	"sync"

	"github.com/rhyrak/go-seating/pkg/model"
)

// Memory is a process-local Cache, used when Redis is disabled.
type Memory struct {
	mu      sync.Mutex
	entries map[string][]*model.SessionResult
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]*model.SessionResult)}
}

func (m *Memory) Get(_ context.Context, key string) ([]*model.SessionResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	results, ok := m.entries[key]
	return results, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, results []*model.SessionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = results
	return nil
}
