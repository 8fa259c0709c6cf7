// Package redisstore keeps in-progress character creation drafts in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/vestige/internal/config"
)

// StateStore implements wizard.StateStore. Values live under
// "<namespace>:<key>" and expire after the configured TTL.
type StateStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStateStore wraps client. A zero ttl keeps values until overwritten.
//
// Precondition: client must be non-nil.
func NewStateStore(client redis.UniversalClient, ttl time.Duration) *StateStore {
	return &StateStore{client: client, ttl: ttl}
}

// NewClient connects to the configured Redis server.
//
// Postcondition: Returns a pinged client or a non-nil error.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func stateKey(namespace, key string) string {
	return namespace + ":" + key
}

// Get returns the stored value and whether it exists.
func (s *StateStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, stateKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting %s: %w", stateKey(namespace, key), err)
	}
	return data, true, nil
}

// Set stores value, replacing any previous value and resetting its TTL.
func (s *StateStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	if err := s.client.Set(ctx, stateKey(namespace, key), string(value), s.ttl).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", stateKey(namespace, key), err)
	}
	return nil
}
