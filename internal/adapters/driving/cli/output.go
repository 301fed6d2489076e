package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driving"
)

var (
	readyColor    = color.New(color.FgGreen, color.Bold)
	rejectedColor = color.New(color.FgYellow, color.Bold)
	errorColor    = color.New(color.FgRed, color.Bold)
	mutedColor    = color.New(color.Faint)
	headingColor  = color.New(color.Bold)
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

// terminalWidth returns the stdout width, capped for readability.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return min(w, 120)
}

// wrap soft-wraps text to width.
func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}

func statusColor(s domain.SessionStatus) *color.Color {
	switch s {
	case domain.StatusReady:
		return readyColor
	case domain.StatusRejected:
		return rejectedColor
	case domain.StatusError:
		return errorColor
	default:
		return mutedColor
	}
}

// sessionJSON is the --json form of a session.
type sessionJSON struct {
	FileName     string   `json:"file_name,omitempty"`
	SessionID    string   `json:"session_id,omitempty"`
	Status       string   `json:"status"`
	Summary      string   `json:"summary"`
	DocumentType string   `json:"document_type,omitempty"`
	Clauses      []string `json:"important_clauses"`
	Diagnostics  string   `json:"diagnostics,omitempty"`
}

func toSessionJSON(s domain.Session) sessionJSON {
	clauses := s.Clauses
	if clauses == nil {
		clauses = []string{}
	}
	return sessionJSON{
		FileName:     s.FileName,
		SessionID:    s.SessionID,
		Status:       s.Status.String(),
		Summary:      s.Summary,
		DocumentType: s.DocumentType,
		Clauses:      clauses,
		Diagnostics:  s.Diagnostics,
	}
}

func printSessionJSON(w io.Writer, s domain.Session) error {
	data, err := json.MarshalIndent(toSessionJSON(s), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printSession writes the human-readable session view.
func printSession(w io.Writer, s domain.Session, details bool) {
	width := terminalWidth()

	if s.HasFile() {
		fmt.Fprintf(w, "%s %s\n", headingColor.Sprint("Document:"), s.FileName)
	}
	fmt.Fprintf(w, "%s %s\n", headingColor.Sprint("Status:  "), statusColor(s.Status).Sprint(s.Status.Description()))
	if s.DocumentType != "" {
		fmt.Fprintf(w, "%s %s\n", headingColor.Sprint("Type:    "), s.DocumentType)
	}
	if s.SessionID != "" {
		fmt.Fprintf(w, "%s %s\n", headingColor.Sprint("Session: "), mutedColor.Sprint(s.SessionID))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingColor.Sprint("Summary"))
	fmt.Fprintln(w, wrap(s.Summary, width))

	if len(s.Clauses) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingColor.Sprint("Important clauses"))
		for i, clause := range s.Clauses {
			fmt.Fprintf(w, "%2d. %s\n", i+1, wrap(clause, width-4))
		}
	}

	if s.HasDiagnostics() {
		fmt.Fprintln(w)
		if details {
			fmt.Fprintln(w, headingColor.Sprint("Details"))
			fmt.Fprintln(w, mutedColor.Sprint(s.Diagnostics))
		} else {
			fmt.Fprintln(w, mutedColor.Sprint("Run with --details to see the raw service response."))
		}
	}
}

// replyPrinter streams the assistant's reply to w as the chat engine
// reveals it.
type replyPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	active  bool
	id      string
	printed string
}

// attach registers the printer with the chat engine.
func (p *replyPrinter) attach(chat driving.ChatEngine) {
	chat.OnChange(func() {
		msgs := chat.Messages()
		if len(msgs) == 0 {
			return
		}
		p.show(msgs[len(msgs)-1])
	})
}

// begin starts streaming for the next question.
func (p *replyPrinter) begin() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
	p.id = ""
	p.printed = ""
}

func (p *replyPrinter) show(msg domain.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active || msg.Role != domain.RoleAssistant || msg.IsPending() {
		return
	}
	p.write(msg)
}

// write prints the unseen part of msg (caller must hold lock).
func (p *replyPrinter) write(msg domain.Message) {
	if msg.ID != p.id {
		p.id = msg.ID
		p.printed = ""
	}
	if strings.HasPrefix(msg.Text, p.printed) {
		fmt.Fprint(p.w, msg.Text[len(p.printed):])
	} else {
		fmt.Fprint(p.w, "\n"+msg.Text)
	}
	p.printed = msg.Text
}

// end prints whatever of final has not been shown yet and stops streaming.
func (p *replyPrinter) end(final domain.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if final.Text != "" && (final.ID != p.id || final.Text != p.printed) {
		p.write(final)
	}
	if p.printed != "" {
		fmt.Fprintln(p.w)
	}
	p.active = false
}
