package driving

import "github.com/custodia-labs/lexiverse-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to defaults
	// for missing or invalid values.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores a single setting by key, e.g. "backend.base_url".
	Set(key, value string) error

	// Keys returns the recognised setting keys in display order.
	Keys() []string

	// Validate checks that the stored settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
