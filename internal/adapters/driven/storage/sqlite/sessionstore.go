package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
)

// sessionIDKey is the kv row holding the backend session identifier.
const sessionIDKey = "session_id"

// Ensure SessionStore implements the interface.
var _ driven.SessionIDStore = (*SessionStore)(nil)

// SessionStore persists the session identifier in the kv table.
type SessionStore struct {
	store *Store
}

// Load returns the stored identifier, or "" if none is stored.
func (s *SessionStore) Load(ctx context.Context) (string, error) {
	var id string
	err := s.store.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", sessionIDKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session id: %w", err)
	}
	return id, nil
}

// Save stores the identifier, replacing any previous one.
func (s *SessionStore) Save(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, sessionIDKey, id)
	if err != nil {
		return fmt.Errorf("saving session id: %w", err)
	}
	return nil
}

// Clear removes the identifier.
func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", sessionIDKey); err != nil {
		return fmt.Errorf("clearing session id: %w", err)
	}
	return nil
}
