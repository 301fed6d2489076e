package driven

import (
	"context"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// BackendGateway talks to the document analysis backend.
//
// Implementations return *domain.GatewayError for transport failures,
// non-success statuses and undecodable payloads. A decoded payload is always
// returned without error, even when it describes a failure; classification
// is the caller's job.
type BackendGateway interface {
	// AnalyzeDocument uploads a document for summary and clause extraction.
	AnalyzeDocument(ctx context.Context, doc domain.Document) (*domain.AnalysisResponse, error)

	// InitChat uploads a document to open a chat session.
	InitChat(ctx context.Context, doc domain.Document) (*domain.ChatReply, error)

	// Chat asks a question within a session. sessionID may be empty.
	Chat(ctx context.Context, message, sessionID string) (*domain.ChatReply, error)
}
