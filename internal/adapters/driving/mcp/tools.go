package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/upload"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_document tool.
type AnalyzeInput struct {
	Path  string `json:"path" jsonschema:"absolute path of a .pdf, .doc, .docx or .txt legal document"`
	Force bool   `json:"force,omitempty" jsonschema:"upload even if the file extension is not recognised"`
}

// AskInput is the input schema for the ask_question tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"a question about the analysed document"`
}

// AskOutput is the output schema for the ask_question tool.
type AskOutput struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id,omitempty"`
}

// ResetInput is the (empty) input schema for the reset_session tool.
type ResetInput struct{}

// ResetOutput is the output schema for the reset_session tool.
type ResetOutput struct {
	Status string `json:"status"`
}

// SessionOutput describes the document session. It is returned by
// analyze_document and by the session resource.
type SessionOutput struct {
	FileName     string   `json:"file_name,omitempty"`
	SessionID    string   `json:"session_id,omitempty"`
	Status       string   `json:"status"`
	Summary      string   `json:"summary"`
	DocumentType string   `json:"document_type,omitempty"`
	Clauses      []string `json:"important_clauses"`
	Diagnostics  string   `json:"diagnostics,omitempty"`
}

func toSessionOutput(s domain.Session) SessionOutput {
	clauses := s.Clauses
	if clauses == nil {
		clauses = []string{}
	}
	return SessionOutput{
		FileName:     s.FileName,
		SessionID:    s.SessionID,
		Status:       s.Status.String(),
		Summary:      s.Summary,
		DocumentType: s.DocumentType,
		Clauses:      clauses,
		Diagnostics:  s.Diagnostics,
	}
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_document",
		Description: "Upload a legal document for analysis. Returns a summary and the important clauses, " +
			"and opens a session for ask_question. Analysis takes 20-30 seconds.",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a question about the most recently analysed document",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset_session",
		Description: "Forget the current document session",
	}, s.handleReset)
}

// handleAnalyze handles the analyze_document tool invocation.
// Rejections and analysis failures are reported in the output status,
// not as tool errors.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	doc, err := upload.Load(input.Path, input.Force)
	if err != nil {
		return nil, SessionOutput{}, err
	}

	if err := s.ports.Session.StartUpload(ctx, doc); err != nil {
		return nil, SessionOutput{}, fmt.Errorf("starting upload: %w", err)
	}

	return nil, toSessionOutput(s.ports.Session.Snapshot()), nil
}

// handleAsk handles the ask_question tool invocation.
// A backend failure is returned as the answer text the user would see.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	msg, err := s.ports.Chat.SubmitMessage(ctx, input.Question)
	switch {
	case errors.Is(err, domain.ErrNoActiveSession):
		return nil, AskOutput{}, fmt.Errorf("no document session, call analyze_document first: %w", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:    msg.Text,
		SessionID: s.ports.Session.Snapshot().SessionID,
	}, nil
}

// handleReset handles the reset_session tool invocation.
func (s *Server) handleReset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ResetInput,
) (*mcp.CallToolResult, ResetOutput, error) {
	if err := s.ports.Session.ResetSession(ctx); err != nil {
		return nil, ResetOutput{}, fmt.Errorf("resetting session: %w", err)
	}
	return nil, ResetOutput{Status: s.ports.Session.Snapshot().Status.String()}, nil
}
