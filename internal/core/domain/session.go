package domain

// SessionStatus is the state of the document-session state machine.
type SessionStatus string

// Session states.
const (
	// StatusEmpty means no document has been uploaded.
	StatusEmpty SessionStatus = "empty"

	// StatusUploading means an upload request is outstanding.
	// No new upload may start and chat is unavailable.
	StatusUploading SessionStatus = "uploading"

	// StatusReady means the document was analysed successfully.
	StatusReady SessionStatus = "ready"

	// StatusRejected means the backend declined the document.
	// This is a normal outcome, not an error.
	StatusRejected SessionStatus = "rejected"

	// StatusError means the upload or analysis failed.
	StatusError SessionStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s SessionStatus) IsValid() bool {
	switch s {
	case StatusEmpty, StatusUploading, StatusReady, StatusRejected, StatusError:
		return true
	default:
		return false
	}
}

// IsSettled returns true once an upload has produced an outcome.
func (s SessionStatus) IsSettled() bool {
	return s == StatusReady || s == StatusRejected || s == StatusError
}

// String returns the string representation.
func (s SessionStatus) String() string {
	return string(s)
}

// Description returns a human-readable description of the status.
func (s SessionStatus) Description() string {
	switch s {
	case StatusEmpty:
		return "No document"
	case StatusUploading:
		return "Analysing document"
	case StatusReady:
		return "Ready"
	case StatusRejected:
		return "Document rejected"
	case StatusError:
		return "Analysis failed"
	default:
		return unknownDescription
	}
}

const unknownDescription = "Unknown"

// Placeholder texts shown in the summary area.
const (
	// DefaultSummary is shown while no document has been uploaded.
	DefaultSummary = "No document uploaded yet."

	// ResumedSummary is shown when a persisted session was restored at startup.
	ResumedSummary = "Resumed your previous session. Ask a question about your document."

	// DefaultRejectionSummary is used when the backend rejects without a reason.
	DefaultRejectionSummary = "The document was rejected. Please upload a legal document."

	// UnexpectedFormatSummary is used when the analysis payload has no usable field.
	UnexpectedFormatSummary = "Unexpected response format from the analysis service."
)

// Session represents one uploaded document and its analysis outcome.
type Session struct {
	// FileName is the name of the uploaded file. Empty before any upload.
	FileName string

	// SessionID is the opaque conversation identifier issued by the backend.
	// Empty until chat initialisation succeeds.
	SessionID string

	// Status is the current state machine state.
	Status SessionStatus

	// Summary is human-readable text describing the outcome.
	Summary string

	// DocumentType is the backend's classification, when provided.
	DocumentType string

	// Clauses holds the extracted important clauses in backend order.
	Clauses []string

	// Diagnostics holds the raw backend payload when the response was
	// malformed or the analysis failed. Empty otherwise.
	Diagnostics string
}

// NewSession returns the empty session shown at startup and after reset.
func NewSession() Session {
	return Session{
		Status:  StatusEmpty,
		Summary: DefaultSummary,
		Clauses: []string{},
	}
}

// HasFile returns true once a file has been chosen.
func (s Session) HasFile() bool {
	return s.FileName != ""
}

// CanChat returns true if questions can be sent to the backend.
func (s Session) CanChat() bool {
	return s.SessionID != "" && s.Status != StatusUploading
}

// HasDiagnostics returns true if a raw payload was retained.
func (s Session) HasDiagnostics() bool {
	return s.Diagnostics != ""
}

// Clone returns a deep copy safe to hand to the presentation layer.
func (s Session) Clone() Session {
	c := s
	c.Clauses = make([]string, len(s.Clauses))
	copy(c.Clauses, s.Clauses)
	return c
}
