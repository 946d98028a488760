package session

import (
	"context"
	"strings"
	"sync"

	"github.com/kbukum/storefront/errors"
)

// MemoryStore keeps the token in process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

var _ TokenStore = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding token, which may be empty.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != "", nil
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.MissingField("token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
