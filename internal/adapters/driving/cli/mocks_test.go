package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// mockSession implements driving.SessionController for CLI tests.
type mockSession struct {
	mu       sync.Mutex
	session  domain.Session
	uploads  []domain.Document
	resets   int
	restores int

	StartUploadFunc func(ctx context.Context, doc domain.Document) (domain.Session, error)
	ResetErr        error
}

func newMockSession() *mockSession {
	return &mockSession{session: domain.NewSession()}
}

func (m *mockSession) StartUpload(ctx context.Context, doc domain.Document) error {
	m.mu.Lock()
	m.uploads = append(m.uploads, doc)
	fn := m.StartUploadFunc
	m.mu.Unlock()

	if fn == nil {
		m.mu.Lock()
		m.session = domain.Session{
			FileName:  doc.FileName,
			SessionID: "sess-1",
			Status:    domain.StatusReady,
			Summary:   "A lease agreement.",
			Clauses:   []string{"Rent is due monthly."},
		}
		m.mu.Unlock()
		return nil
	}

	s, err := fn(ctx, doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	return nil
}

func (m *mockSession) ResetSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
	if m.ResetErr != nil {
		return m.ResetErr
	}
	m.session = domain.NewSession()
	return nil
}

func (m *mockSession) Restore(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restores++
	return nil
}

func (m *mockSession) RefreshSessionID(context.Context, string, string) error { return nil }

func (m *mockSession) Snapshot() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Clone()
}

func (m *mockSession) OnChange(func()) {}

// mockChat implements driving.ChatEngine for CLI tests. Replies are
// revealed in frames through the OnChange listeners like the real engine.
type mockChat struct {
	mu        sync.Mutex
	messages  []domain.Message
	listeners []func()
	asked     []string

	// Frames are the revealed texts of the next reply; the last is final.
	Frames []string
	Err    error
}

func (m *mockChat) SubmitMessage(_ context.Context, text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, domain.ErrInvalidInput
	}

	m.mu.Lock()
	m.asked = append(m.asked, text)
	frames := m.Frames
	if len(frames) == 0 {
		frames = []string{"ok"}
	}
	err := m.Err
	m.mu.Unlock()

	m.append(domain.Message{ID: "u", Role: domain.RoleUser, Text: text, State: domain.MessageSettled})
	if err != nil {
		reply := domain.Message{ID: "a", Role: domain.RoleAssistant, Text: frames[len(frames)-1], State: domain.MessageSettled}
		m.append(reply)
		return reply, err
	}

	m.append(domain.Message{ID: "a", Role: domain.RoleAssistant, State: domain.MessagePending})
	var reply domain.Message
	for i, frame := range frames {
		state := domain.MessageRevealing
		if i == len(frames)-1 {
			state = domain.MessageSettled
		}
		reply = domain.Message{ID: "a", Role: domain.RoleAssistant, Text: frame, State: state}
		m.replaceLast(reply)
	}
	return reply, nil
}

func (m *mockChat) append(msg domain.Message) {
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
	m.notify()
}

func (m *mockChat) replaceLast(msg domain.Message) {
	m.mu.Lock()
	m.messages[len(m.messages)-1] = msg
	m.mu.Unlock()
	m.notify()
}

func (m *mockChat) notify() {
	m.mu.Lock()
	fns := append([]func(){}, m.listeners...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (m *mockChat) Messages() []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Message{}, m.messages...)
}

func (m *mockChat) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// mockSettings implements driving.SettingsService for CLI tests.
type mockSettings struct {
	settings    domain.AppSettings
	set         map[string]string
	SetErr      error
	ValidateErr error
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettings) Set(key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.set[key] = value
	if key == "session.store" {
		m.settings.Session.Store = domain.SessionStoreType(value)
	}
	return nil
}

func (m *mockSettings) Keys() []string { return []string{"backend.base_url", "session.store"} }

func (m *mockSettings) Validate() error { return m.ValidateErr }

func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// withServices installs svc for the duration of the test.
func withServices(t *testing.T, svc *Services) {
	t.Helper()
	origServices, origFactory := services, factory
	services = svc
	t.Cleanup(func() {
		services, factory = origServices, origFactory
	})
}

// newTestServices returns services backed by fresh mocks.
func newTestServices() (*Services, *mockSession, *mockChat, *mockSettings) {
	session := newMockSession()
	chat := &mockChat{}
	settings := newMockSettings()
	return &Services{Session: session, Chat: chat, Settings: settings}, session, chat, settings
}

// executeCommand runs the root command with args and stdin, returning
// everything written to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores flag variables that persist between executions.
func resetFlags() {
	verbose, configDir, baseURL, ephemeral = false, "", "", false
	analyzeJSON, analyzeDetails, analyzeWatch, analyzeForce = false, false, false, false
	sessionJSONOutput = false
}
