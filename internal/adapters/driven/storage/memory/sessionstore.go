package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionIDStore = (*SessionStore)(nil)

// SessionStore keeps the session identifier for the life of the process.
type SessionStore struct {
	mu sync.RWMutex
	id string
}

// NewSessionStore creates a session store, optionally pre-seeded with id.
func NewSessionStore(id string) *SessionStore {
	return &SessionStore{id: id}
}

// Load returns the stored identifier, or "" if none is stored.
func (s *SessionStore) Load(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, nil
}

// Save stores the identifier.
func (s *SessionStore) Save(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	return nil
}

// Clear removes the identifier.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	return nil
}
