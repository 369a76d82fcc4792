package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ministry:session:"

// RedisStore keeps sessions in Redis so they survive restarts and are shared
// across replicas. Expiry is delegated to the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to the Redis server at rawURL with short timeouts.
// PRE: rawURL is a redis:// or rediss:// URL
func NewRedisStore(rawURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second
	return &RedisStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

func redisKey(id string) string {
	return keyPrefix + id
}

// Load returns the session stored under id.
func (r *RedisStore) Load(ctx context.Context, id string) (Session, error) {
	raw, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

// Save writes s with the remaining lifetime since it was created.
// POST: an already-expired session is cleared instead of written
func (r *RedisStore) Save(ctx context.Context, s Session) error {
	remaining := r.ttl - time.Since(s.CreatedAt)
	if remaining <= 0 {
		return r.Clear(ctx, s.ID)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKey(s.ID), raw, remaining).Err()
}

// Clear deletes the session key.
func (r *RedisStore) Clear(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKey(id)).Err()
}

// Healthy verifies redis connectivity.
func (r *RedisStore) Healthy(ctx context.Context) bool {
	if r == nil || r.client == nil {
		return false
	}
	return r.client.Ping(ctx).Err() == nil
}

// Close releases the connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
