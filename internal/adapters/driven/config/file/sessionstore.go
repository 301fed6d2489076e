package file

import (
	"context"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/config/configval"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
)

// StateFileName is the state file inside the lexiverse directory.
const StateFileName = "state.toml"

// sessionIDKey holds the backend session identifier.
const sessionIDKey = "session.id"

// Ensure SessionStore implements the interface.
var _ driven.SessionIDStore = (*SessionStore)(nil)

// SessionStore persists the session identifier in state.toml so the
// conversation can resume after a restart.
type SessionStore struct {
	file *tomlFile
}

// NewSessionStore opens state.toml in dir (default ~/.lexiverse).
func NewSessionStore(dir string) (*SessionStore, error) {
	f, err := openTOMLFile(dir, StateFileName)
	if err != nil {
		return nil, err
	}
	return &SessionStore{file: f}, nil
}

// Load returns the stored identifier, or "" if none is stored.
func (s *SessionStore) Load(_ context.Context) (string, error) {
	if err := s.file.load(); err != nil {
		return "", err
	}
	val, _ := s.file.get(sessionIDKey)
	return configval.String(val), nil
}

// Save stores the identifier.
func (s *SessionStore) Save(_ context.Context, id string) error {
	return s.file.set(sessionIDKey, id)
}

// Clear removes the identifier.
func (s *SessionStore) Clear(_ context.Context) error {
	return s.file.remove(sessionIDKey)
}

// Path returns the state file path.
func (s *SessionStore) Path() string {
	return s.file.path
}
