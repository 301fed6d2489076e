package domain

import "time"

// Defaults for application settings.
const (
	// DefaultBaseURL is the local development backend address.
	DefaultBaseURL = "http://localhost:8000"

	// EnvBaseURL overrides the configured backend base URL.
	EnvBaseURL = "LEXIVERSE_API_BASE_URL"

	// DefaultBackendTimeout allows for slow document analysis.
	DefaultBackendTimeout = 120 * time.Second

	// DefaultRedisAddr is the Redis address used by the redis session store.
	DefaultRedisAddr = "localhost:6379"

	// DefaultRedisTTL is how long a shared session identifier lives in Redis.
	DefaultRedisTTL = 24 * time.Hour

	// DefaultRevealInterval is the word-by-word reveal cadence in the TUI.
	DefaultRevealInterval = 40 * time.Millisecond
)

// SessionStoreType selects where the session identifier is persisted.
type SessionStoreType string

// Available session stores.
const (
	// SessionStoreFile keeps the identifier in a TOML state file.
	SessionStoreFile SessionStoreType = "file"

	// SessionStoreSQLite keeps the identifier in a local SQLite database.
	SessionStoreSQLite SessionStoreType = "sqlite"

	// SessionStoreRedis keeps the identifier in Redis so it can be shared.
	SessionStoreRedis SessionStoreType = "redis"

	// SessionStoreMemory forgets the identifier when the process exits.
	SessionStoreMemory SessionStoreType = "memory"
)

// IsValid returns true if the store type is recognised.
func (t SessionStoreType) IsValid() bool {
	switch t {
	case SessionStoreFile, SessionStoreSQLite, SessionStoreRedis, SessionStoreMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SessionStoreType) String() string {
	return string(t)
}

// Description returns a human-readable description of the store.
func (t SessionStoreType) Description() string {
	switch t {
	case SessionStoreFile:
		return "File (state.toml)"
	case SessionStoreSQLite:
		return "SQLite (state.db)"
	case SessionStoreRedis:
		return "Redis (shared)"
	case SessionStoreMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// BackendSettings configures the analysis backend gateway.
type BackendSettings struct {
	// BaseURL is the backend root, e.g. http://localhost:8000.
	BaseURL string

	// Timeout bounds each backend request.
	Timeout time.Duration

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond float64
}

// SessionSettings configures session identifier persistence.
type SessionSettings struct {
	// Store selects the persistence backend.
	Store SessionStoreType

	// RedisAddr is used when Store is redis.
	RedisAddr string

	// RedisTTL is used when Store is redis.
	RedisTTL time.Duration
}

// ChatSettings configures the chat engine.
type ChatSettings struct {
	// RevealInterval is the delay between revealed words. Zero shows replies at once.
	RevealInterval time.Duration
}

// LogSettings configures logging.
type LogSettings struct {
	// File enables JSON logging to a rotating file when non-empty.
	File string
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Backend BackendSettings
	Session SessionSettings
	Chat    ChatSettings
	Log     LogSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultBackendTimeout,
		},
		Session: SessionSettings{
			Store:     SessionStoreFile,
			RedisAddr: DefaultRedisAddr,
			RedisTTL:  DefaultRedisTTL,
		},
		Chat: ChatSettings{
			RevealInterval: DefaultRevealInterval,
		},
	}
}
