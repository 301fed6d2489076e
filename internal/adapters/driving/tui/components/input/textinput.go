// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/styles"
)

// Placeholders shown for each input mode.
const (
	ChatPlaceholder   = "Ask a question about your document..."
	UploadPlaceholder = "Path to a .pdf, .doc, .docx or .txt file"
)

// PromptInput wraps a bubbles textinput used both for questions and for
// the upload file path.
type PromptInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	mode      messages.InputMode
	width     int
}

// NewPromptInput creates a new input in chat mode.
func NewPromptInput(s *styles.Styles) *PromptInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = ChatPlaceholder
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 50

	return &PromptInput{
		textinput: ti,
		styles:    s,
		mode:      messages.ModeChat,
		width:     50,
	}
}

// Init initialises the input.
func (p *PromptInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PromptInput) Update(msg tea.Msg) (*PromptInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the input with a label for the current mode.
func (p *PromptInput) View() string {
	label := p.styles.Title.Render("Ask: ")
	if p.mode == messages.ModeUpload {
		label = p.styles.Subtitle.Render("File: ")
	}
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// SetMode switches between chat and upload, clearing the input.
func (p *PromptInput) SetMode(mode messages.InputMode) {
	p.mode = mode
	p.textinput.Reset()
	if mode == messages.ModeUpload {
		p.textinput.Placeholder = UploadPlaceholder
	} else {
		p.textinput.Placeholder = ChatPlaceholder
	}
}

// Mode returns the current mode.
func (p *PromptInput) Mode() messages.InputMode {
	return p.mode
}

// Value returns the current input value.
func (p *PromptInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PromptInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *PromptInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PromptInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PromptInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PromptInput) SetWidth(width int) {
	p.width = width
	// Account for label, border and padding
	p.textinput.Width = max(width-12, 20)
}

// Width returns the current width.
func (p *PromptInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *PromptInput) Reset() {
	p.textinput.Reset()
}
