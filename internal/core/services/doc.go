// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The session controller owns the upload state machine, the chat engine owns
// the conversation, and both notify registered listeners after every change
// so presentation layers can redraw without polling.
package services
