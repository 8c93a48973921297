package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Opinionated default timeouts for Redis operations.
const (
	redisDialTimeout  = 3 * time.Second
	redisReadTimeout  = 2 * time.Second
	redisWriteTimeout = 2 * time.Second
	redisPingTimeout  = 2 * time.Second
)

const redisKeyPrefix = "pokeview:prefs:"

// RedisStore keeps each client's preferences in a hash.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// DialRedis parses a Redis URL, connects and pings.
func DialRedis(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = 10
	options.MinIdleConns = 2
	options.DialTimeout = redisDialTimeout
	options.ReadTimeout = redisReadTimeout
	options.WriteTimeout = redisWriteTimeout

	client := redis.NewClient(options)
	store := NewRedisStore(client)
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis client connected", "addr", options.Addr, "pool_size", options.PoolSize)
	return client, nil
}

func (s *RedisStore) Load(ctx context.Context, clientID string) (Preferences, error) {
	vals, err := s.client.HGetAll(ctx, redisKeyPrefix+clientID).Result()
	if err != nil {
		return Preferences{}, fmt.Errorf("redis: load preferences: %w", err)
	}
	if len(vals) == 0 {
		return Preferences{}, ErrNotFound
	}
	return Preferences{Theme: vals["theme"], Language: vals["lang"]}, nil
}

func (s *RedisStore) Save(ctx context.Context, clientID string, p Preferences) error {
	if err := s.client.HSet(ctx, redisKeyPrefix+clientID, "theme", p.Theme, "lang", p.Language).Err(); err != nil {
		return fmt.Errorf("redis: save preferences: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
