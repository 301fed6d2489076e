package file

import (
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/config/configval"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
)

// ConfigFileName is the settings file inside the lexiverse directory.
const ConfigFileName = "config.toml"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a TOML-backed driven.ConfigStore.
type ConfigStore struct {
	file *tomlFile
}

// NewConfigStore opens config.toml in configDir.
// If configDir is empty, defaults to ~/.lexiverse/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	f, err := openTOMLFile(configDir, ConfigFileName)
	if err != nil {
		return nil, err
	}
	return &ConfigStore{file: f}, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	return s.file.get(key)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.file.get(key)
	return configval.String(val)
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.file.get(key)
	return configval.Int(val)
}

// GetFloat retrieves a numeric configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.file.get(key)
	return configval.Float(val)
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.file.get(key)
	return configval.Bool(val)
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	return s.file.set(key, value)
}

// Delete removes a configuration value and persists immediately.
func (s *ConfigStore) Delete(key string) error {
	return s.file.remove(key)
}

// Load re-reads configuration from disk.
func (s *ConfigStore) Load() error {
	return s.file.load()
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.file.path
}
