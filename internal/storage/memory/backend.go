package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/regrada-ai/regrada-auth/internal/storage"
)

// Ensure Backend implements storage.Backend interface at compile time
var _ storage.Backend = (*Backend)(nil)

// Backend keeps session tokens in process memory. Sessions do not survive a
// restart and are not shared between replicas.
type Backend struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewBackend() *Backend {
	return &Backend{
		sessions: make(map[string]map[string]string),
	}
}

func (b *Backend) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	values, ok := b.sessions[sessionID]
	if !ok {
		return "", false, nil
	}
	value, ok := values[key]
	return value, ok, nil
}

func (b *Backend) Set(ctx context.Context, sessionID string, values map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, ok := b.sessions[sessionID]
	if !ok {
		current = make(map[string]string, len(values))
		b.sessions[sessionID] = current
	}
	maps.Copy(current, values)
	return nil
}

func (b *Backend) Clear(ctx context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.sessions, sessionID)
	return nil
}

func (b *Backend) Ping(ctx context.Context) error {
	return nil
}
