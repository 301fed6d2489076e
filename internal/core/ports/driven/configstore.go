package driven

// ConfigStore provides access to flat dot-notation key/value configuration,
// e.g. "backend.base_url". Implementations handle persistence and type
// conversion.
type ConfigStore interface {
	// Get retrieves a value by key and reports whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 if the key is missing or not an integer.
	GetInt(key string) int

	// GetFloat returns 0 if the key is missing or not a number.
	GetFloat(key string) float64

	// GetBool returns false if the key is missing or not a boolean.
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Delete removes a key and persists immediately. Missing keys are not an error.
	Delete(key string) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the backing file path.
	Path() string
}
