// Package tui provides an interactive terminal user interface for lexiverse.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session drives uploads and the session state machine.
	Session driving.SessionController

	// Chat maintains the conversation about the document.
	Chat driving.ChatEngine
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.SessionController, chat driving.ChatEngine) *Ports {
	return &Ports{
		Session: session,
		Chat:    chat,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionController
	}
	if p.Chat == nil {
		return ErrMissingChatEngine
	}
	return nil
}
