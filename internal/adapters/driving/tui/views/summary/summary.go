// Package summary provides the document summary panel for the TUI.
package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/services"
)

// Texts shown in the panel.
const (
	Title        = "Intelligent Summary View"
	UploadNotice = "Heads up: it may take about 20-30 seconds for the summary to appear."
	NoClauses    = "No important clauses were extracted from this document."
	DetailsHint  = "ctrl+d: show details"
)

// View renders the session summary with Summary and Important Clauses tabs.
type View struct {
	styles *styles.Styles

	renderer      *glamour.TermRenderer
	rendererWidth int

	session     domain.Session
	tab         messages.SummaryTab
	showDetails bool
	step        int

	width  int
	height int
}

// NewView creates a new summary panel.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		session: domain.NewSession(),
		tab:     messages.TabSummary,
		width:   40,
		height:  20,
	}
}

// SetSession replaces the displayed session. Details are hidden again
// when a new upload starts.
func (v *View) SetSession(s domain.Session) {
	if s.Status == domain.StatusUploading && v.session.Status != domain.StatusUploading {
		v.showDetails = false
		v.tab = messages.TabSummary
	}
	v.session = s
}

// Session returns the displayed session.
func (v *View) Session() domain.Session {
	return v.session
}

// SetStep sets the animation step used for the ellipsis and the quotes.
func (v *View) SetStep(step int) {
	v.step = step
}

// ToggleTab switches between the summary and the clauses.
func (v *View) ToggleTab() {
	v.tab = v.tab.Next()
}

// Tab returns the visible tab.
func (v *View) Tab() messages.SummaryTab {
	return v.tab
}

// ToggleDetails shows or hides the raw service response.
func (v *View) ToggleDetails() {
	if v.session.HasDiagnostics() {
		v.showDetails = !v.showDetails
	}
}

// ShowingDetails reports whether diagnostics are expanded.
func (v *View) ShowingDetails() bool {
	return v.showDetails
}

// SetDimensions sets the outer panel size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// View renders the panel.
func (v *View) View() string {
	inner := v.innerWidth()

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(Title))
	b.WriteString("\n")
	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	switch v.session.Status {
	case domain.StatusUploading:
		b.WriteString(v.renderUploading(inner))
	case domain.StatusEmpty:
		b.WriteString(v.styles.Muted.Render(v.session.Summary))
	default:
		if v.tab == messages.TabClauses {
			b.WriteString(v.renderClauses(inner))
		} else {
			b.WriteString(v.renderSummary(inner))
		}
		b.WriteString(v.renderDiagnostics(inner))
	}

	return v.styles.Panel.
		Width(max(v.width-2, 10)).
		Height(max(v.height-2, 3)).
		Render(b.String())
}

func (v *View) innerWidth() int {
	return max(v.width-v.styles.Panel.GetHorizontalFrameSize(), 10)
}

func (v *View) renderTabs() string {
	summaryTab, clausesTab := v.styles.Tab, v.styles.Tab
	if v.tab == messages.TabSummary {
		summaryTab = v.styles.ActiveTab
	} else {
		clausesTab = v.styles.ActiveTab
	}
	clauses := "Important Clauses"
	if n := len(v.session.Clauses); n > 0 {
		clauses = fmt.Sprintf("Important Clauses (%d)", n)
	}
	return summaryTab.Render("Summary") + " " + clausesTab.Render(clauses)
}

func (v *View) renderUploading(width int) string {
	var b strings.Builder
	b.WriteString(v.styles.Notice.Width(width - 2).Render(UploadNotice))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Analysing your document" + services.Ellipsis(v.step)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Quote.Width(width).Render(Quote(v.step)))
	return b.String()
}

func (v *View) renderSummary(width int) string {
	var b strings.Builder
	b.WriteString(v.styles.Status(v.session.Status).Render(v.session.Status.Description()))
	if v.session.DocumentType != "" {
		b.WriteString(v.styles.Muted.Render(" · " + v.session.DocumentType))
	}
	b.WriteString("\n")
	b.WriteString(v.renderMarkdown(v.session.Summary, width))
	return b.String()
}

func (v *View) renderClauses(width int) string {
	if len(v.session.Clauses) == 0 {
		return v.styles.Muted.Render(NoClauses)
	}
	var md strings.Builder
	for i, clause := range v.session.Clauses {
		fmt.Fprintf(&md, "%d. %s\n", i+1, clause)
	}
	return v.renderMarkdown(md.String(), width)
}

func (v *View) renderDiagnostics(width int) string {
	if !v.session.HasDiagnostics() {
		return ""
	}
	if !v.showDetails {
		return "\n" + v.styles.Help.Render(DetailsHint)
	}
	return "\n" + v.styles.Subtitle.Render("Details") + "\n" +
		v.styles.Muted.Width(width).Render(v.session.Diagnostics)
}

// renderMarkdown renders text with glamour, falling back to plain text.
func (v *View) renderMarkdown(text string, width int) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = v.styles.Normal.Width(width).Render(text)
		}
	}()

	if v.renderer == nil || v.rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return v.styles.Normal.Width(width).Render(text)
		}
		v.renderer = r
		v.rendererWidth = width
	}

	rendered, err := v.renderer.Render(text)
	if err != nil {
		return v.styles.Normal.Width(width).Render(text)
	}
	return strings.Trim(rendered, "\n")
}
