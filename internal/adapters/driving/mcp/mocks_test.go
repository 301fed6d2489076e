package mcp

import (
	"context"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// mockSessionController is a mock implementation of driving.SessionController.
type mockSessionController struct {
	session   domain.Session
	uploads   []domain.Document
	uploadErr error
	resetErr  error
	resets    int

	// onUpload replaces the session when StartUpload is called.
	onUpload *domain.Session
}

func newMockSession() *mockSessionController {
	return &mockSessionController{session: domain.NewSession()}
}

func (m *mockSessionController) StartUpload(_ context.Context, doc domain.Document) error {
	m.uploads = append(m.uploads, doc)
	if m.uploadErr != nil {
		return m.uploadErr
	}
	if m.onUpload != nil {
		m.session = *m.onUpload
	}
	return nil
}

func (m *mockSessionController) ResetSession(context.Context) error {
	m.resets++
	if m.resetErr != nil {
		return m.resetErr
	}
	m.session = domain.NewSession()
	return nil
}

func (m *mockSessionController) Restore(context.Context) error { return nil }

func (m *mockSessionController) RefreshSessionID(context.Context, string, string) error { return nil }

func (m *mockSessionController) Snapshot() domain.Session { return m.session.Clone() }

func (m *mockSessionController) OnChange(func()) {}

// mockChatEngine is a mock implementation of driving.ChatEngine.
type mockChatEngine struct {
	messages []domain.Message
	reply    domain.Message
	err      error
	asked    []string
}

func (m *mockChatEngine) SubmitMessage(_ context.Context, text string) (domain.Message, error) {
	m.asked = append(m.asked, text)
	return m.reply, m.err
}

func (m *mockChatEngine) Messages() []domain.Message { return m.messages }

func (m *mockChatEngine) OnChange(func()) {}
