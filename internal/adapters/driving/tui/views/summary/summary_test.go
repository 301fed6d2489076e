package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

func readySession() domain.Session {
	return domain.Session{
		FileName:     "lease.pdf",
		SessionID:    "sess-1",
		Status:       domain.StatusReady,
		Summary:      "Residential lease for twelve months.",
		DocumentType: "Lease",
		Clauses:      []string{"Rent is due monthly.", "Deposit is refundable."},
	}
}

func newTestView() *View {
	v := NewView(nil)
	v.SetDimensions(80, 30)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.Equal(t, domain.StatusEmpty, v.Session().Status)
	assert.Equal(t, messages.TabSummary, v.Tab())
	assert.False(t, v.ShowingDetails())
}

func TestView_Empty(t *testing.T) {
	v := newTestView()

	view := v.View()

	assert.Contains(t, view, Title)
	assert.Contains(t, view, domain.DefaultSummary)
}

func TestView_Uploading(t *testing.T) {
	v := newTestView()
	v.SetSession(domain.Session{FileName: "lease.pdf", Status: domain.StatusUploading, Clauses: []string{}})

	view := v.View()

	assert.Contains(t, view, "Heads up")
	assert.Contains(t, view, "Analysing your document.")
	assert.Contains(t, view, "Ignorantia")
}

func TestView_UploadingAnimates(t *testing.T) {
	v := newTestView()
	v.SetSession(domain.Session{Status: domain.StatusUploading})

	v.SetStep(2)
	assert.Contains(t, v.View(), "Analysing your document...")

	v.SetStep(quoteSteps)
	assert.Contains(t, v.View(), "Pacta sunt servanda")
}

func TestView_ReadySummary(t *testing.T) {
	v := newTestView()
	v.SetSession(readySession())

	view := v.View()

	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "Lease")
	assert.Contains(t, view, "Residential")
	assert.Contains(t, view, "Important Clauses (2)")
	assert.NotContains(t, view, DetailsHint)
}

func TestView_ClausesTab(t *testing.T) {
	v := newTestView()
	v.SetSession(readySession())

	v.ToggleTab()
	require.Equal(t, messages.TabClauses, v.Tab())

	view := v.View()
	assert.Contains(t, view, "monthly")
	assert.Contains(t, view, "refundable")
}

func TestView_ClausesTabEmpty(t *testing.T) {
	v := newTestView()
	s := readySession()
	s.Clauses = []string{}
	v.SetSession(s)
	v.ToggleTab()

	assert.Contains(t, v.View(), NoClauses)
}

func TestView_DiagnosticsToggle(t *testing.T) {
	v := newTestView()
	v.SetSession(domain.Session{
		FileName:    "lease.pdf",
		Status:      domain.StatusError,
		Summary:     "Document analysis failed.",
		Clauses:     []string{},
		Diagnostics: `{"summary":"Document analysis failed"}`,
	})

	assert.Contains(t, v.View(), DetailsHint)

	v.ToggleDetails()
	require.True(t, v.ShowingDetails())
	view := v.View()
	assert.Contains(t, view, "Details")
	assert.Contains(t, view, `"summary"`)
	assert.NotContains(t, view, DetailsHint)
}

func TestView_ToggleDetailsWithoutDiagnostics(t *testing.T) {
	v := newTestView()
	v.SetSession(readySession())

	v.ToggleDetails()

	assert.False(t, v.ShowingDetails())
}

func TestView_NewUploadResetsPanel(t *testing.T) {
	v := newTestView()
	s := readySession()
	s.Diagnostics = "raw"
	v.SetSession(s)
	v.ToggleTab()
	v.ToggleDetails()

	v.SetSession(domain.Session{FileName: "nda.pdf", Status: domain.StatusUploading})

	assert.Equal(t, messages.TabSummary, v.Tab())
	assert.False(t, v.ShowingDetails())
}

func TestQuote(t *testing.T) {
	assert.Equal(t, legalQuotes[0], Quote(0))
	assert.Equal(t, legalQuotes[0], Quote(quoteSteps-1))
	assert.Equal(t, legalQuotes[1], Quote(quoteSteps))
	assert.Equal(t, legalQuotes[0], Quote(quoteSteps*len(legalQuotes)))
	assert.NotEmpty(t, Quote(-5))
}
