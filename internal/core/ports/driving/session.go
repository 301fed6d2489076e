package driving

import (
	"context"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// SessionController drives the document-session state machine.
type SessionController interface {
	// StartUpload analyses a document and opens a chat session for it.
	// It blocks until both backend calls have settled. Backend failures are
	// reflected in the session state, not returned. Returns
	// domain.ErrUploadInProgress if an upload is outstanding.
	StartUpload(ctx context.Context, doc domain.Document) error

	// ResetSession returns the session to Empty and forgets the persisted
	// session identifier.
	ResetSession(ctx context.Context) error

	// Restore loads the persisted session identifier, if any.
	Restore(ctx context.Context) error

	// RefreshSessionID replaces previousID with id after the backend renewed
	// the session. It does nothing if the session no longer holds previousID.
	RefreshSessionID(ctx context.Context, previousID, id string) error

	// Snapshot returns a copy of the current session.
	Snapshot() domain.Session

	// OnChange registers fn to be called after every session mutation.
	OnChange(fn func())
}

// ChatEngine maintains the conversation about the current document.
type ChatEngine interface {
	// SubmitMessage appends the question and the assistant's answer.
	// Empty text is rejected with domain.ErrInvalidInput and leaves the
	// conversation unchanged. Without an active session the question and a
	// hint are appended and domain.ErrNoActiveSession is returned. Otherwise
	// it blocks until the reply is settled and returns the settled assistant
	// message; a backend failure is returned alongside the settled error text.
	SubmitMessage(ctx context.Context, text string) (domain.Message, error)

	// Messages returns a copy of the conversation.
	Messages() []domain.Message

	// OnChange registers fn to be called after every conversation mutation.
	OnChange(fn func())
}
