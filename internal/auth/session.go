package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore maps opaque session ids to broker ids.
type SessionStore interface {
	Create(ctx context.Context, brokerID string) (string, error)
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, sid string) (string, error)
	Destroy(ctx context.Context, sid string) error
}

// RedisSessionStore keeps sessions as "{prefix}{sid}" -> brokerID with a TTL.
type RedisSessionStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisSessionStore {
	if prefix == "" {
		prefix = "sess:"
	}
	return &RedisSessionStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

var _ SessionStore = (*RedisSessionStore)(nil)

func (s *RedisSessionStore) Create(ctx context.Context, brokerID string) (string, error) {
	sid := uuid.NewString()
	if err := s.rdb.Set(ctx, s.prefix+sid, brokerID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sid string) (string, error) {
	id, err := s.rdb.Get(ctx, s.prefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Destroy is idempotent.
func (s *RedisSessionStore) Destroy(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, s.prefix+sid).Err()
}
