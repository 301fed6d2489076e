package mcp

import (
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session drives uploads and the session state machine.
	Session driving.SessionController

	// Chat maintains the conversation about the document.
	Chat driving.ChatEngine
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionController
	}
	if p.Chat == nil {
		return ErrMissingChatEngine
	}
	return nil
}
