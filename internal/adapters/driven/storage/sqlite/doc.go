// Package sqlite provides SQLite-backed implementations of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It currently backs the SessionStore, which keeps the
// backend session identifier in a small key/value table.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files; applied
// versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.lexiverse/data/state.db
package sqlite
