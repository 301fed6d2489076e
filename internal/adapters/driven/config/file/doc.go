// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data as TOML under the lexiverse directory
// (default ~/.lexiverse).
//
// Adapters:
//   - ConfigStore: user settings in config.toml
//   - SessionStore: the backend session identifier in state.toml
package file
