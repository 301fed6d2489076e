package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBaseURL        = "backend.base_url"
	KeyTimeout        = "backend.timeout_seconds"
	KeyRatePerSecond  = "backend.rate_per_second"
	KeySessionStore   = "session.store"
	KeyRedisAddr      = "session.redis_addr"
	KeyRedisTTL       = "session.redis_ttl_hours"
	KeyRevealInterval = "chat.reveal_interval_ms"
	KeyLogFile        = "log.file"
)

// settingKeys lists the keys in display order.
var settingKeys = []string{
	KeyBaseURL,
	KeyTimeout,
	KeyRatePerSecond,
	KeySessionStore,
	KeyRedisAddr,
	KeyRedisTTL,
	KeyRevealInterval,
	KeyLogFile,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			BaseURL:       s.getString(KeyBaseURL, defaults.Backend.BaseURL),
			Timeout:       s.getPositive(KeyTimeout, time.Second, defaults.Backend.Timeout),
			RatePerSecond: s.getRate(),
		},
		Session: domain.SessionSettings{
			Store:     s.getStoreType(defaults.Session.Store),
			RedisAddr: s.getString(KeyRedisAddr, defaults.Session.RedisAddr),
			RedisTTL:  s.getPositive(KeyRedisTTL, time.Hour, defaults.Session.RedisTTL),
		},
		Chat: domain.ChatSettings{
			RevealInterval: s.getRevealInterval(defaults.Chat.RevealInterval),
		},
		Log: domain.LogSettings{
			File: s.configStore.GetString(KeyLogFile),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(KeyBaseURL, settings.Backend.BaseURL); err != nil {
		return fmt.Errorf("save backend base_url: %w", err)
	}
	if err := s.configStore.Set(KeyTimeout, int(settings.Backend.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save backend timeout: %w", err)
	}
	if err := s.configStore.Set(KeyRatePerSecond, settings.Backend.RatePerSecond); err != nil {
		return fmt.Errorf("save backend rate: %w", err)
	}

	if err := s.configStore.Set(KeySessionStore, settings.Session.Store.String()); err != nil {
		return fmt.Errorf("save session store: %w", err)
	}
	if err := s.configStore.Set(KeyRedisAddr, settings.Session.RedisAddr); err != nil {
		return fmt.Errorf("save session redis_addr: %w", err)
	}
	if err := s.configStore.Set(KeyRedisTTL, int(settings.Session.RedisTTL/time.Hour)); err != nil {
		return fmt.Errorf("save session redis_ttl: %w", err)
	}

	if err := s.configStore.Set(KeyRevealInterval, int(settings.Chat.RevealInterval/time.Millisecond)); err != nil {
		return fmt.Errorf("save chat reveal interval: %w", err)
	}

	if settings.Log.File == "" {
		if err := s.configStore.Delete(KeyLogFile); err != nil {
			return fmt.Errorf("save log file: %w", err)
		}
	} else if err := s.configStore.Set(KeyLogFile, settings.Log.File); err != nil {
		return fmt.Errorf("save log file: %w", err)
	}

	return nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case KeyBaseURL:
		if err := validateBaseURL(value); err != nil {
			return err
		}
		stored = strings.TrimRight(value, "/")
	case KeyTimeout, KeyRedisTTL:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = n
	case KeyRevealInterval:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be zero or a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = n
	case KeyRatePerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = f
	case KeySessionStore:
		store := domain.SessionStoreType(strings.ToLower(value))
		if !store.IsValid() {
			return fmt.Errorf("%w: session store %q", domain.ErrUnsupportedType, value)
		}
		stored = store.String()
	case KeyRedisAddr:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		stored = value
	case KeyLogFile:
		if value == "" {
			return s.configStore.Delete(key)
		}
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// Validate checks that the stored settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := validateBaseURL(settings.Backend.BaseURL); err != nil {
		return err
	}
	if raw := s.configStore.GetString(KeySessionStore); raw != "" && !domain.SessionStoreType(raw).IsValid() {
		return fmt.Errorf("%w: session store %q", domain.ErrUnsupportedType, raw)
	}
	if settings.Session.Store == domain.SessionStoreRedis && settings.Session.RedisAddr == "" {
		return fmt.Errorf("%w: redis session store requires %s", domain.ErrInvalidInput, KeyRedisAddr)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base URL must be an http(s) URL, got %q", domain.ErrInvalidInput, raw)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositive(key string, unit, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * unit
}

func (s *SettingsService) getRate() float64 {
	val := s.configStore.GetFloat(KeyRatePerSecond)
	if val < 0 {
		return 0
	}
	return val
}

func (s *SettingsService) getRevealInterval(defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(KeyRevealInterval); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(KeyRevealInterval)
	if val < 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getStoreType(defaultVal domain.SessionStoreType) domain.SessionStoreType {
	val := s.configStore.GetString(KeySessionStore)
	if val == "" {
		return defaultVal
	}
	store := domain.SessionStoreType(val)
	if !store.IsValid() {
		return defaultVal
	}
	return store
}
