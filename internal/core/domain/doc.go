// Package domain defines the core business entities for LexiVerse.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session: One uploaded document and its analysis outcome
//   - Message: A single chat turn in the Conversation
//   - Document: The bytes of a file chosen for upload
//   - AnalysisResponse / ChatReply: Backend payloads
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
