package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		env        string
		configured string
		want       string
	}{
		{"flag wins", "http://flag", "http://env", "http://cfg", "http://flag"},
		{"env over config", "", "http://env", "http://cfg", "http://env"},
		{"config", "", "", "http://cfg", "http://cfg"},
		{"default", "", "", "", domain.DefaultBaseURL},
		{"blank ignored", "  ", "", "http://cfg", "http://cfg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBaseURL(tt.flag, tt.env, tt.configured))
		})
	}
}

func TestBuild_Ephemeral(t *testing.T) {
	dir := t.TempDir()

	svc, err := Build(cli.Options{ConfigDir: dir, Ephemeral: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	require.NotNil(t, svc.Session)
	require.NotNil(t, svc.Chat)
	require.NotNil(t, svc.Settings)
	assert.Equal(t, domain.StatusEmpty, svc.Session.Snapshot().Status)

	require.NoError(t, svc.Session.Restore(context.Background()))
	assert.Empty(t, svc.Session.Snapshot().SessionID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "ephemeral runs must not touch the config dir")
}

func TestBuild_FileStoreRestoresSession(t *testing.T) {
	dir := t.TempDir()
	state, err := file.NewSessionStore(dir)
	require.NoError(t, err)
	require.NoError(t, state.Save(context.Background(), "saved-id"))

	svc, err := Build(cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	require.NoError(t, svc.Session.Restore(context.Background()))
	snap := svc.Session.Snapshot()
	assert.Equal(t, "saved-id", snap.SessionID)
	assert.True(t, snap.CanChat())
}

func TestBuild_SQLiteStore(t *testing.T) {
	dir := t.TempDir()
	cfg, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("session.store", "sqlite"))

	svc, err := Build(cli.Options{ConfigDir: dir})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "data", sqlite.DBFileName))
	assert.NoError(t, svc.Close())
}

func TestBuild_RedisUnavailable(t *testing.T) {
	dir := t.TempDir()
	cfg, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("session.store", "redis"))
	require.NoError(t, cfg.Set("session.redis_addr", "127.0.0.1:1"))

	_, err = Build(cli.Options{ConfigDir: dir})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestBuild_ConfigDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := Build(cli.Options{ConfigDir: path})

	assert.Error(t, err)
}

func TestOpenSessionStore_Unknown(t *testing.T) {
	_, _, err := openSessionStore(cli.Options{}, domain.SessionSettings{Store: "floppy"})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
