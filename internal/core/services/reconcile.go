package services

import (
	"strings"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// Outcome is the session state derived from one upload.
type Outcome struct {
	Status       domain.SessionStatus
	Summary      string
	DocumentType string
	Clauses      []string
	Diagnostics  string
}

// AnalysisResult is the settled result of the analysis request.
type AnalysisResult struct {
	Response *domain.AnalysisResponse
	Err      error
}

// ChatInitResult is the settled result of the chat initialisation request.
type ChatInitResult struct {
	Reply *domain.ChatReply
	Err   error
}

// Reconciliation is the combined result of both upload requests.
type Reconciliation struct {
	Outcome

	// SessionID is the identifier issued by chat initialisation, if any.
	SessionID string
}

// ClassifyAnalysis maps an analysis payload to Ready, Rejected or Error.
// Rules are applied in order: rejection, clean summary, malformed summary,
// error field, unexpected format.
func ClassifyAnalysis(resp *domain.AnalysisResponse) Outcome {
	if resp == nil {
		resp = &domain.AnalysisResponse{}
	}

	if resp.IsRejection() {
		return Outcome{
			Status:       domain.StatusRejected,
			Summary:      resp.RejectionReason(),
			DocumentType: resp.DocumentType,
			Clauses:      []string{},
		}
	}

	if strings.TrimSpace(resp.Summary) != "" {
		if domain.IsMalformedSummary(resp.Summary) {
			return Outcome{
				Status:      domain.StatusError,
				Summary:     resp.Summary,
				Clauses:     []string{},
				Diagnostics: resp.Raw,
			}
		}
		clauses := make([]string, len(resp.ImportantClauses))
		copy(clauses, resp.ImportantClauses)
		return Outcome{
			Status:       domain.StatusReady,
			Summary:      resp.Summary,
			DocumentType: resp.DocumentType,
			Clauses:      clauses,
		}
	}

	if text := resp.ErrorText(); text != "" {
		return Outcome{
			Status:      domain.StatusError,
			Summary:     text,
			Clauses:     []string{},
			Diagnostics: resp.Raw,
		}
	}

	return Outcome{
		Status:      domain.StatusError,
		Summary:     domain.UnexpectedFormatSummary,
		Clauses:     []string{},
		Diagnostics: resp.Raw,
	}
}

// Reconcile combines the two settled upload requests.
// A classified analysis always wins. When the analysis request failed, a
// non-empty chat initialisation reply becomes the summary. Chat
// initialisation only ever contributes the session identifier otherwise.
func Reconcile(analysis AnalysisResult, chatInit ChatInitResult) Reconciliation {
	var r Reconciliation
	if chatInit.Err == nil && chatInit.Reply != nil {
		r.SessionID = chatInit.Reply.SessionID
	}

	if analysis.Err == nil {
		r.Outcome = ClassifyAnalysis(analysis.Response)
		return r
	}

	diagnostics := analysisDiagnostics(analysis.Err)
	if chatInit.Err == nil && chatInit.Reply != nil {
		if text := strings.TrimSpace(chatInit.Reply.Text()); text != "" {
			r.Outcome = Outcome{
				Status:      domain.StatusReady,
				Summary:     chatInit.Reply.Text(),
				Clauses:     []string{},
				Diagnostics: diagnostics,
			}
			return r
		}
	}

	r.Outcome = Outcome{
		Status:      domain.StatusError,
		Summary:     "Upload failed: " + analysis.Err.Error(),
		Clauses:     []string{},
		Diagnostics: diagnostics,
	}
	return r
}

// analysisDiagnostics returns the raw body of a failed request, falling back
// to the error text.
func analysisDiagnostics(err error) string {
	if body := domain.RawBody(err); body != "" {
		return body
	}
	return err.Error()
}
