// Package bootstrap wires the driven adapters into the core services for
// the lexiverse binary.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/backend/httpapi"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexiverse-cli/internal/core/services"
	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// Build creates the services for one invocation from opts.
func Build(opts cli.Options) (*cli.Services, error) {
	configStore, err := openConfig(opts)
	if err != nil {
		return nil, err
	}

	settingsSvc := services.NewSettingsService(configStore)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if err := logger.EnableFile(settings.Log.File); err != nil {
		return nil, err
	}

	base := ResolveBaseURL(opts.BaseURL, os.Getenv(domain.EnvBaseURL), settings.Backend.BaseURL)
	logger.Debug("backend: %s", base)

	gateway := httpapi.New(httpapi.Config{
		BaseURL:       base,
		Timeout:       settings.Backend.Timeout,
		RatePerSecond: settings.Backend.RatePerSecond,
	})

	store, closeStore, err := openSessionStore(opts, settings.Session)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	conversation := services.NewConversation()
	session := services.NewSessionController(gateway, store, conversation)
	chat := services.NewChatEngine(gateway, session, conversation)
	chat.SetRevealInterval(settings.Chat.RevealInterval)

	return &cli.Services{
		Session:  session,
		Chat:     chat,
		Settings: settingsSvc,
		Close: func() error {
			return errors.Join(closeStore(), logger.Close())
		},
	}, nil
}

// ResolveBaseURL picks the backend URL: flag, then environment, then
// config, then the built-in default.
func ResolveBaseURL(flag, env, configured string) string {
	for _, candidate := range []string{flag, env, configured} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return domain.DefaultBaseURL
}

// openConfig opens the TOML config, or an in-memory one when ephemeral.
func openConfig(opts cli.Options) (driven.ConfigStore, error) {
	if opts.Ephemeral {
		return memory.NewConfigStore(), nil
	}
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return store, nil
}

// openSessionStore selects the session identifier store. The returned
// close func is never nil.
func openSessionStore(
	opts cli.Options,
	cfg domain.SessionSettings,
) (driven.SessionIDStore, func() error, error) {
	noop := func() error { return nil }

	storeType := cfg.Store
	if opts.Ephemeral {
		storeType = domain.SessionStoreMemory
	}
	logger.Debug("session store: %s", storeType)

	switch storeType {
	case domain.SessionStoreMemory:
		return memory.NewSessionStore(""), noop, nil

	case domain.SessionStoreSQLite:
		dataDir := ""
		if opts.ConfigDir != "" {
			dataDir = filepath.Join(opts.ConfigDir, "data")
		}
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite session store: %w", err)
		}
		return db.SessionStore(), db.Close, nil

	case domain.SessionStoreRedis:
		store, err := redis.New(context.Background(), redis.Config{
			Addr: cfg.RedisAddr,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening redis session store: %w", err)
		}
		return store, store.Close, nil

	case domain.SessionStoreFile, "":
		store, err := file.NewSessionStore(opts.ConfigDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening session state: %w", err)
		}
		return store, noop, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown session store %q", domain.ErrInvalidInput, storeType)
	}
}
