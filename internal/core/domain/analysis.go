package domain

import "strings"

// AnalysisResponse is the payload of POST /analyze-document.
// All fields are optional; classification rules live in the services package.
type AnalysisResponse struct {
	Summary          string   `json:"summary,omitempty"`
	Decision         string   `json:"decision,omitempty"`
	Reason           *string  `json:"reason,omitempty"`
	DocumentType     string   `json:"document_type,omitempty"`
	ImportantClauses []string `json:"important_clauses,omitempty"`
	Error            string   `json:"error,omitempty"`
	Message          string   `json:"message,omitempty"`

	// Raw is the undecoded response body, kept for diagnostics.
	Raw string `json:"-"`
}

// rejectionDecisions are the decision values that signal rejection.
var rejectionDecisions = []string{"reject", "rejected", "rejection"}

// IsRejection returns true if the backend declined the document, either
// through a rejection decision or by supplying a reason.
func (r AnalysisResponse) IsRejection() bool {
	if r.Reason != nil {
		return true
	}
	decision := strings.ToLower(strings.TrimSpace(r.Decision))
	for _, d := range rejectionDecisions {
		if decision == d {
			return true
		}
	}
	return false
}

// RejectionReason returns the reason text, or a default when none was given.
func (r AnalysisResponse) RejectionReason() string {
	if r.Reason != nil && strings.TrimSpace(*r.Reason) != "" {
		return *r.Reason
	}
	return DefaultRejectionSummary
}

// ErrorText returns the generic error field, preferring error over message.
func (r AnalysisResponse) ErrorText() string {
	if strings.TrimSpace(r.Error) != "" {
		return r.Error
	}
	return strings.TrimSpace(r.Message)
}

// MalformedMarkersV1 are lowercase substrings that mark a summary produced by
// a backend parsing or analysis failure. They mirror the analyzer's fallback
// summaries and must be updated together with the backend.
var MalformedMarkersV1 = []string{
	"analysis could not be completed",
	"structured output failure",
	"document analysis timed out",
	"document analysis failed",
	"failed to parse",
	"error parsing",
}

// IsMalformedSummary returns true if the summary contains a known failure marker.
// Matching is case-insensitive.
func IsMalformedSummary(summary string) bool {
	lower := strings.ToLower(summary)
	for _, marker := range MalformedMarkersV1 {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ChatReply is the payload of POST /chat.
type ChatReply struct {
	SessionID         string `json:"session_id,omitempty"`
	Response          string `json:"response,omitempty"`
	Reply             string `json:"reply,omitempty"`
	Answer            string `json:"answer,omitempty"`
	DocumentProcessed *bool  `json:"document_processed,omitempty"`
}

// Text returns the reply text, accepting the reply and answer aliases.
func (r ChatReply) Text() string {
	switch {
	case r.Response != "":
		return r.Response
	case r.Reply != "":
		return r.Reply
	default:
		return r.Answer
	}
}
