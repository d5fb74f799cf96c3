package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the todo state as a JSON value in Redis.
type RedisStore struct {
	redis *redis.Client
	key   Key
}

// NewRedisStore creates a Redis backed store.
func NewRedisStore(redisClient *redis.Client, key Key) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{
		redis: redisClient,
		key:   key,
	}
}

// Load implements Store. A missing key yields an empty state.
func (s *RedisStore) Load(ctx context.Context) (State, error) {
	StoreOps.WithLabelValues("redis", "load").Inc()

	data, err := s.redis.Get(ctx, s.key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{Todos: []Todo{}}, nil
		}
		StoreErrors.WithLabelValues("redis", "load").Inc()
		return State{}, fmt.Errorf("redis get: %w", err)
	}

	state, err := decodeState(data)
	if err != nil {
		StoreErrors.WithLabelValues("redis", "load").Inc()
		return State{}, err
	}
	return state, nil
}

// Save implements Store. The value never expires.
func (s *RedisStore) Save(ctx context.Context, state State) error {
	StoreOps.WithLabelValues("redis", "save").Inc()

	data, err := encodeState(state)
	if err != nil {
		StoreErrors.WithLabelValues("redis", "save").Inc()
		return err
	}

	if err := s.redis.Set(ctx, s.key.String(), data, 0).Err(); err != nil {
		StoreErrors.WithLabelValues("redis", "save").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the stored state.
func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key.String()).Err(); err != nil {
		StoreErrors.WithLabelValues("redis", "delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close implements Store. The Redis client is owned by the caller.
func (s *RedisStore) Close() error {
	return nil
}
