package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

func TestSettingsShow(t *testing.T) {
	svc, _, _, _ := newTestServices()
	withServices(t, svc)

	out, err := executeCommand(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Backend]")
	assert.Contains(t, out, domain.DefaultBaseURL)
	assert.Contains(t, out, "[Session]")
	assert.Contains(t, out, domain.SessionStoreFile.Description())
	assert.Contains(t, out, "File: (disabled)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_InvalidWarns(t *testing.T) {
	svc, _, _, settings := newTestServices()
	settings.ValidateErr = errors.New("redis address is required")
	withServices(t, svc)

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: redis address is required")
}

func TestSettingsShow_NoService(t *testing.T) {
	svc, _, _, _ := newTestServices()
	svc.Settings = nil
	withServices(t, svc)

	_, err := executeCommand(t, "", "settings")

	assert.EqualError(t, err, "settings service not configured")
}

func TestSettingsSet(t *testing.T) {
	svc, _, _, settings := newTestServices()
	withServices(t, svc)

	out, err := executeCommand(t, "", "settings", "set", "session.store", "sqlite")

	require.NoError(t, err)
	assert.Equal(t, "sqlite", settings.set["session.store"])
	assert.Contains(t, out, "Set session.store = sqlite")
}

func TestSettingsSet_Error(t *testing.T) {
	svc, _, _, settings := newTestServices()
	settings.SetErr = domain.ErrInvalidInput
	withServices(t, svc)

	_, err := executeCommand(t, "", "settings", "set", "nope", "x")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsWizard_Defaults(t *testing.T) {
	svc, _, _, settings := newTestServices()
	withServices(t, svc)

	out, err := executeCommand(t, "\n\n", "settings", "wizard")

	require.NoError(t, err)
	_, urlSet := settings.set["backend.base_url"]
	assert.False(t, urlSet)
	assert.Equal(t, "file", settings.set["session.store"])
	assert.Contains(t, out, "Configuration Complete!")
}

func TestSettingsWizard_Redis(t *testing.T) {
	svc, _, _, settings := newTestServices()
	withServices(t, svc)

	_, err := executeCommand(t, "https://api.example.com\n3\ncache:6379\n", "settings", "wizard")

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", settings.set["backend.base_url"])
	assert.Equal(t, "redis", settings.set["session.store"])
	assert.Equal(t, "cache:6379", settings.set["session.redis_addr"])
}

func TestSettingsWizard_InvalidChoice(t *testing.T) {
	svc, _, _, _ := newTestServices()
	withServices(t, svc)

	_, err := executeCommand(t, "\n9\n", "settings", "wizard")

	assert.EqualError(t, err, "invalid selection")
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 2},
		{"1", 1},
		{"4", 4},
		{"5", 0},
		{"0", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseChoice(tt.input, 4, 2))
		})
	}
}
