// Package redis provides a Redis-backed session identifier store, letting
// several machines share one backend conversation.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// DefaultKey is the Redis key holding the session identifier.
const DefaultKey = "lexiverse:session_id"

// pingTimeout bounds the connectivity check in New.
const pingTimeout = 3 * time.Second

// Ensure SessionStore implements the interface.
var _ driven.SessionIDStore = (*SessionStore)(nil)

// Config holds configuration for the Redis session store.
type Config struct {
	// Addr is host:port (default: localhost:6379).
	Addr string

	// Key overrides DefaultKey, mainly for tests.
	Key string

	// TTL is refreshed on every read and write (default: 24h).
	TTL time.Duration
}

// SessionStore keeps the identifier under a single key with a sliding TTL.
type SessionStore struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg Config) (*SessionStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = domain.DefaultRedisAddr
	}

	client := goredis.NewClient(&goredis.Options{Addr: cfg.Addr})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}

	return NewWithClient(client, cfg.Key, cfg.TTL), nil
}

// NewWithClient wraps an existing client. Empty key and non-positive ttl
// select the defaults.
func NewWithClient(client *goredis.Client, key string, ttl time.Duration) *SessionStore {
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = domain.DefaultRedisTTL
	}
	return &SessionStore{client: client, key: key, ttl: ttl}
}

// Load returns the stored identifier, or "" if none is stored.
// A successful read refreshes the TTL.
func (s *SessionStore) Load(ctx context.Context) (string, error) {
	id, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session id: %w", err)
	}

	if err := s.client.Expire(ctx, s.key, s.ttl).Err(); err != nil {
		logger.Warn("refresh session id ttl: %v", err)
	}
	return id, nil
}

// Save stores the identifier with the configured TTL.
func (s *SessionStore) Save(ctx context.Context, id string) error {
	if err := s.client.Set(ctx, s.key, id, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving session id: %w", err)
	}
	return nil
}

// Clear removes the identifier.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clearing session id: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *SessionStore) Close() error {
	return s.client.Close()
}
