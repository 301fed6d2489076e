// Package mcp provides an MCP (Model Context Protocol) server adapter for
// LexiVerse. It lets AI assistants upload legal documents and ask questions
// about them through the same session the CLI and TUI use.
package mcp

import "errors"

// ErrMissingSessionController is returned when the session controller is not provided.
var ErrMissingSessionController = errors.New("mcp: session controller is required")

// ErrMissingChatEngine is returned when the chat engine is not provided.
var ErrMissingChatEngine = errors.New("mcp: chat engine is required")
