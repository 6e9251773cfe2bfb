package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the credential slot in process memory. Used by tests and
// as the default backend when nothing else is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	cred string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cred == "" {
		return "", ErrNoCredential
	}
	return m.cred, nil
}

func (m *MemoryStore) Set(ctx context.Context, credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = credential
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = ""
	return nil
}
