package tokenstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps issued refresh tokens so they can be checked and revoked.
// This is session state, not a read cache: a refresh token is only honored
// while its entry is alive in Redis.
type Store interface {
	// Save records a refresh token for a username with a TTL matching the token expiry
	Save(ctx context.Context, username, token string, ttl time.Duration) error

	// Exists reports whether the refresh token is still live for the username
	Exists(ctx context.Context, username, token string) (bool, error)

	// Revoke drops a single refresh token
	Revoke(ctx context.Context, username, token string) error

	// Ping verifies the connection
	Ping(ctx context.Context) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed refresh token store
func NewRedisStore(host, password string, db int) Store {
	return &redisStore{
		client: redis.NewClient(&redis.Options{
			Addr:         host,
			Password:     password,
			DB:           db,
			PoolSize:     10,
			MinIdleConns: 5,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// tokenKey builds the Redis key for a refresh token.
// The raw token never goes into Redis, only its SHA-256 digest.
func tokenKey(username, token string) string {
	digest := sha256.Sum256([]byte(token))
	return fmt.Sprintf("refresh:%s:%s", username, hex.EncodeToString(digest[:]))
}

func (s *redisStore) Save(ctx context.Context, username, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenKey(username, token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (s *redisStore) Exists(ctx context.Context, username, token string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(username, token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}
	return n > 0, nil
}

func (s *redisStore) Revoke(ctx context.Context, username, token string) error {
	if err := s.client.Del(ctx, tokenKey(username, token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *redisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
