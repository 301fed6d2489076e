// Package chat provides the document assistant conversation panel for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/services"
)

// Title is the panel header.
const Title = "Document Assistant"

// View renders the conversation in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	messages []domain.Message
	step     int

	width  int
	height int
}

// NewView creates a new chat panel.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(40, 16),
		width:    40,
		height:   20,
	}
	v.refresh()
	return v
}

// Update scrolls the conversation.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keymap.Matches(keyMsg.String(), v.keymap.ScrollUp):
			v.viewport.HalfViewUp()
			return v, nil
		case keymap.Matches(keyMsg.String(), v.keymap.ScrollDown):
			v.viewport.HalfViewDown()
			return v, nil
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// SetMessages replaces the displayed conversation.
func (v *View) SetMessages(msgs []domain.Message) {
	v.messages = msgs
	v.refresh()
}

// Messages returns the displayed conversation.
func (v *View) Messages() []domain.Message {
	return v.messages
}

// HasPending reports whether a reply is still awaited.
func (v *View) HasPending() bool {
	for _, m := range v.messages {
		if m.IsPending() {
			return true
		}
	}
	return false
}

// SetStep advances the ellipsis shown for pending replies.
func (v *View) SetStep(step int) {
	v.step = step
	if v.HasPending() {
		v.refresh()
	}
}

// SetDimensions sets the outer panel size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = max(width-v.styles.Panel.GetHorizontalFrameSize(), 10)
	// Title line and panel border
	v.viewport.Height = max(height-v.styles.Panel.GetVerticalFrameSize()-2, 3)
	v.refresh()
}

// View renders the panel.
func (v *View) View() string {
	body := v.styles.Title.Render(Title) + "\n\n" + v.viewport.View()
	return v.styles.Panel.
		Width(max(v.width-2, 10)).
		Height(max(v.height-2, 3)).
		Render(body)
}

// refresh re-renders the conversation, following the bottom unless the
// user scrolled up.
func (v *View) refresh() {
	follow := v.viewport.AtBottom()
	v.viewport.SetContent(v.render())
	if follow {
		v.viewport.GotoBottom()
	}
}

func (v *View) render() string {
	width := v.viewport.Width
	parts := make([]string, 0, len(v.messages))
	for _, m := range v.messages {
		parts = append(parts, v.renderMessage(m, width))
	}
	return strings.Join(parts, "\n\n")
}

func (v *View) renderMessage(m domain.Message, width int) string {
	if m.Role == domain.RoleUser {
		label := v.styles.Subtitle.Render("You")
		return label + "\n" + v.styles.UserMessage.Width(width).Render(m.Text)
	}

	label := v.styles.Title.Render("Assistant")
	if m.IsPending() {
		return label + "\n" + v.styles.Muted.Render(services.Ellipsis(v.step))
	}
	return label + "\n" + v.styles.AssistantMessage.Width(width).Render(m.Text)
}
