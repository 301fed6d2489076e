package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// MockSessionController implements driving.SessionController for testing.
type MockSessionController struct {
	mu        sync.Mutex
	session   domain.Session
	listeners []func()
	uploads   []domain.Document
	resets    int

	StartUploadFunc func(ctx context.Context, doc domain.Document) error
	ResetFunc       func(ctx context.Context) error
}

func newMockSession() *MockSessionController {
	return &MockSessionController{session: domain.NewSession()}
}

func (m *MockSessionController) StartUpload(ctx context.Context, doc domain.Document) error {
	m.mu.Lock()
	m.uploads = append(m.uploads, doc)
	m.mu.Unlock()
	if m.StartUploadFunc != nil {
		return m.StartUploadFunc(ctx, doc)
	}
	return nil
}

func (m *MockSessionController) ResetSession(ctx context.Context) error {
	m.mu.Lock()
	m.resets++
	m.mu.Unlock()
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx)
	}
	return nil
}

func (m *MockSessionController) Restore(context.Context) error { return nil }

func (m *MockSessionController) RefreshSessionID(context.Context, string, string) error { return nil }

func (m *MockSessionController) Snapshot() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Clone()
}

func (m *MockSessionController) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// set replaces the session and notifies listeners.
func (m *MockSessionController) set(s domain.Session) {
	m.mu.Lock()
	m.session = s
	fns := append([]func(){}, m.listeners...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (m *MockSessionController) Uploads() []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Document{}, m.uploads...)
}

// MockChatEngine implements driving.ChatEngine for testing.
type MockChatEngine struct {
	mu        sync.Mutex
	messages  []domain.Message
	listeners []func()
	submitted []string

	SubmitFunc func(ctx context.Context, text string) (domain.Message, error)
}

func (m *MockChatEngine) SubmitMessage(ctx context.Context, text string) (domain.Message, error) {
	m.mu.Lock()
	m.submitted = append(m.submitted, text)
	m.mu.Unlock()
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, text)
	}
	return domain.Message{Role: domain.RoleAssistant, Text: "ok", State: domain.MessageSettled}, nil
}

func (m *MockChatEngine) Messages() []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Message{}, m.messages...)
}

func (m *MockChatEngine) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *MockChatEngine) set(msgs []domain.Message) {
	m.mu.Lock()
	m.messages = msgs
	fns := append([]func(){}, m.listeners...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (m *MockChatEngine) Submitted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.submitted...)
}
