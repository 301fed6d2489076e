package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// mockGateway implements driven.BackendGateway with overridable functions.
type mockGateway struct {
	analyze  func(ctx context.Context, doc domain.Document) (*domain.AnalysisResponse, error)
	initChat func(ctx context.Context, doc domain.Document) (*domain.ChatReply, error)
	chat     func(ctx context.Context, message, sessionID string) (*domain.ChatReply, error)

	mu        sync.Mutex
	chatCalls int
}

func (m *mockGateway) AnalyzeDocument(ctx context.Context, doc domain.Document) (*domain.AnalysisResponse, error) {
	if m.analyze == nil {
		return &domain.AnalysisResponse{Summary: "A lease agreement."}, nil
	}
	return m.analyze(ctx, doc)
}

func (m *mockGateway) InitChat(ctx context.Context, doc domain.Document) (*domain.ChatReply, error) {
	if m.initChat == nil {
		return &domain.ChatReply{SessionID: "sess-1", Response: "Document processed."}, nil
	}
	return m.initChat(ctx, doc)
}

func (m *mockGateway) Chat(ctx context.Context, message, sessionID string) (*domain.ChatReply, error) {
	m.mu.Lock()
	m.chatCalls++
	m.mu.Unlock()
	if m.chat == nil {
		return &domain.ChatReply{Response: "ok"}, nil
	}
	return m.chat(ctx, message, sessionID)
}

func (m *mockGateway) ChatCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCalls
}

// failingSessionStore implements driven.SessionIDStore and fails every call.
type failingSessionStore struct{}

var errStoreDown = errors.New("store unavailable")

func (failingSessionStore) Load(context.Context) (string, error) { return "", errStoreDown }
func (failingSessionStore) Save(context.Context, string) error   { return errStoreDown }
func (failingSessionStore) Clear(context.Context) error          { return errStoreDown }

func gatewayFailure(op string, status int, body string) error {
	return &domain.GatewayError{
		Kind:       domain.KindNetworkFailure,
		Op:         op,
		StatusCode: status,
		Body:       body,
	}
}

func strPtr(s string) *string {
	return &s
}
