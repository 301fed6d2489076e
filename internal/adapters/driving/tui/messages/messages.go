// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// StateChanged is sent after the session or the conversation changed.
// Views re-read their state from the driving ports when they receive it.
type StateChanged struct{}

// EllipsisTick advances the pending-reply and uploading animations.
type EllipsisTick struct {
	Step int
}

// UploadRequested is a command to analyse the file at Path.
type UploadRequested struct {
	Path string
}

// UploadFinished signals that StartUpload returned.
type UploadFinished struct {
	Err error
}

// ChatFinished signals that SubmitMessage returned.
type ChatFinished struct {
	Err error
}

// ResetFinished signals that ResetSession returned.
type ResetFinished struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// InputMode identifies what the input line is used for.
type InputMode int

const (
	// ModeChat sends the input as a question.
	ModeChat InputMode = iota
	// ModeUpload treats the input as a file path to upload.
	ModeUpload
)

// String returns the string representation of the input mode.
func (m InputMode) String() string {
	switch m {
	case ModeChat:
		return "chat"
	case ModeUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// SummaryTab identifies the visible tab of the summary panel.
type SummaryTab int

const (
	// TabSummary shows the summary text.
	TabSummary SummaryTab = iota
	// TabClauses shows the important clauses.
	TabClauses
)

// String returns the string representation of the tab.
func (t SummaryTab) String() string {
	switch t {
	case TabSummary:
		return "summary"
	case TabClauses:
		return "clauses"
	default:
		return "unknown"
	}
}

// Next returns the other tab.
func (t SummaryTab) Next() SummaryTab {
	if t == TabSummary {
		return TabClauses
	}
	return TabSummary
}
