package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/views/summary"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/upload"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// ellipsisInterval is the cadence of the pending and uploading animations.
const ellipsisInterval = 400 * time.Millisecond

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The app owns no business rules. Every session or conversation mutation
// reported through OnChange becomes a messages.StateChanged, after which
// the views re-read the driving ports.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	summaryView *summary.View
	chatView    *chat.View
	input       *input.PromptInput
	statusbar   *status.Bar

	// changes receives a signal per OnChange notification. It is buffered
	// so bursts of changes collapse into one redraw.
	changes chan struct{}

	// step is the current animation step; animating is true while a tick
	// is scheduled.
	step      int
	animating bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		summaryView: summary.NewView(s),
		chatView:    chat.NewView(s, km),
		input:       input.NewPromptInput(s),
		statusbar:   status.NewBar(s, km),
		changes:     make(chan struct{}, 1),
	}

	ports.Session.OnChange(a.notify)
	ports.Chat.OnChange(a.notify)
	a.sync()

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// notify is the OnChange listener. It never blocks the caller.
func (a *App) notify() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// waitForChange turns the next OnChange notification into a message.
func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.changes:
			return messages.StateChanged{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("LexiVerse - Legal Document Assistant"),
		a.input.Init(),
		a.waitForChange(),
		a.startAnimation(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.StateChanged:
		a.sync()
		return a, tea.Batch(a.waitForChange(), a.startAnimation())

	case messages.EllipsisTick:
		a.step = msg.Step
		a.summaryView.SetStep(a.step)
		a.chatView.SetStep(a.step)
		if a.needsAnimation() {
			return a, a.tick(a.step + 1)
		}
		a.animating = false
		return a, nil

	case messages.UploadRequested:
		return a, a.upload(msg.Path)

	case messages.UploadFinished:
		a.setError(msg.Err)
		a.sync()
		return a, nil

	case messages.ChatFinished:
		// Backend failures are already part of the conversation.
		if errors.Is(msg.Err, domain.ErrInvalidInput) {
			a.setError(msg.Err)
		}
		a.sync()
		return a, nil

	case messages.ResetFinished:
		a.setError(msg.Err)
		a.sync()
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKey routes key presses. The input line keeps focus, so only
// bindings on control keys are intercepted.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keymap.Submit):
		return a, a.submit()

	case keymap.Matches(keyStr, a.keymap.Cancel):
		if a.input.Mode() == messages.ModeUpload {
			a.setMode(messages.ModeChat)
		}
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Upload):
		a.setMode(messages.ModeUpload)
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Reset):
		return a, a.reset()

	case keymap.Matches(keyStr, a.keymap.SwitchTab):
		a.summaryView.ToggleTab()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Details):
		a.summaryView.ToggleDetails()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.ScrollUp),
		keymap.Matches(keyStr, a.keymap.ScrollDown):
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the input as a question or starts an upload.
func (a *App) submit() tea.Cmd {
	value := strings.TrimSpace(a.input.Value())
	a.setError(nil)

	if a.input.Mode() == messages.ModeUpload {
		a.setMode(messages.ModeChat)
		if value == "" {
			return nil
		}
		return a.upload(value)
	}

	if value == "" {
		return nil
	}
	a.input.Reset()

	ctx, chatEngine := a.ctx, a.ports.Chat
	return func() tea.Msg {
		_, err := chatEngine.SubmitMessage(ctx, value)
		return messages.ChatFinished{Err: err}
	}
}

// upload reads the file and runs StartUpload off the UI goroutine.
func (a *App) upload(path string) tea.Cmd {
	ctx, session := a.ctx, a.ports.Session
	return func() tea.Msg {
		doc, err := upload.Load(path, false)
		if err != nil {
			return messages.UploadFinished{Err: err}
		}
		logger.Debug("tui: uploading %s (%d bytes)", doc.FileName, doc.Size())
		return messages.UploadFinished{Err: session.StartUpload(ctx, doc)}
	}
}

func (a *App) reset() tea.Cmd {
	ctx, session := a.ctx, a.ports.Session
	return func() tea.Msg {
		return messages.ResetFinished{Err: session.ResetSession(ctx)}
	}
}

// sync re-reads the driving ports into the views.
func (a *App) sync() {
	snap := a.ports.Session.Snapshot()
	a.summaryView.SetSession(snap)
	a.statusbar.SetSession(snap)
	a.chatView.SetMessages(a.ports.Chat.Messages())
}

func (a *App) needsAnimation() bool {
	return a.summaryView.Session().Status == domain.StatusUploading || a.chatView.HasPending()
}

// startAnimation schedules the next tick unless one is already scheduled.
func (a *App) startAnimation() tea.Cmd {
	if a.animating || !a.needsAnimation() {
		return nil
	}
	a.animating = true
	return a.tick(a.step + 1)
}

func (a *App) tick(step int) tea.Cmd {
	return tea.Tick(ellipsisInterval, func(time.Time) tea.Msg {
		return messages.EllipsisTick{Step: step}
	})
}

func (a *App) setMode(mode messages.InputMode) {
	a.input.SetMode(mode)
	a.statusbar.SetMode(mode)
}

func (a *App) setError(err error) {
	a.err = err
	if err != nil {
		logger.Warn("tui: %v", err)
		a.statusbar.SetMessage(err.Error())
	} else {
		a.statusbar.SetMessage("")
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, a.summaryView.View(), a.chatView.View())
	return lipgloss.JoinVertical(lipgloss.Left, panels, a.input.View(), a.statusbar.View())
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Mode returns the current input mode.
func (a *App) Mode() messages.InputMode {
	return a.input.Mode()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions lays out the panels for a terminal of the given size.
// The summary takes two fifths of the width; the input and status bar
// take the bottom four lines.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	panelHeight := max(height-4, 6)
	left := width * 2 / 5
	a.summaryView.SetDimensions(left, panelHeight)
	a.chatView.SetDimensions(width-left, panelHeight)
	a.input.SetWidth(width)
	a.statusbar.SetWidth(width)
}
