package driven

import "context"

// SessionIDStore persists the single backend session identifier so a restart
// can resume the same conversation.
type SessionIDStore interface {
	// Load returns the stored identifier, or "" if none is stored.
	Load(ctx context.Context) (string, error)

	// Save stores the identifier, replacing any previous one.
	Save(ctx context.Context, id string) error

	// Clear removes the identifier. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
