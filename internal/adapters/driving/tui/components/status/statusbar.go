// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// Bar displays the session status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	status   domain.SessionStatus
	fileName string
	mode     messages.InputMode
	message  string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		status: domain.StatusEmpty,
		mode:   messages.ModeChat,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	inner := b.width - b.styles.StatusBar.GetHorizontalFrameSize()
	padding := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the session status, or the last error.
func (b *Bar) renderLeft() string {
	if b.message != "" {
		return b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message))
	}
	text := b.status.Description()
	if b.fileName != "" {
		text = fmt.Sprintf("%s · %s", text, b.fileName)
	}
	return b.styles.Status(b.status).Render(text)
}

// renderRight renders keybinding hints for the current mode.
func (b *Bar) renderRight() string {
	var bindings []key.Binding
	if b.mode == messages.ModeUpload {
		bindings = b.keymap.UploadHelp()
	} else {
		bindings = b.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Help.Render(strings.Join(hints, " | "))
}

// SetSession updates the displayed session.
func (b *Bar) SetSession(s domain.Session) {
	b.status = s.Status
	b.fileName = s.FileName
}

// Status returns the displayed session status.
func (b *Bar) Status() domain.SessionStatus {
	return b.status
}

// SetMode selects which key hints are shown.
func (b *Bar) SetMode(mode messages.InputMode) {
	b.mode = mode
}

// SetMessage sets an error message. An empty message clears it.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
