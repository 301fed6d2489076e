package tui

import "errors"

// ErrMissingSessionController is returned when the session controller is not provided.
var ErrMissingSessionController = errors.New("tui: session controller is required")

// ErrMissingChatEngine is returned when the chat engine is not provided.
var ErrMissingChatEngine = errors.New("tui: chat engine is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
