package commands

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/postfeed/pkg/client"
	"github.com/Sternrassler/postfeed/pkg/config"
	"github.com/Sternrassler/postfeed/pkg/pagination"
	"github.com/Sternrassler/postfeed/pkg/todo"
)

func newClient(cfg config.Config) (*client.Client, error) {
	return client.New(client.Config{
		BaseURL:    cfg.API.BaseURL,
		UserAgent:  cfg.API.UserAgent,
		PageParam:  cfg.API.PageParam,
		LimitParam: cfg.API.LimitParam,
		Timeout:    cfg.API.Timeout.Duration,
	})
}

func newCoordinator(cfg config.Config, fetcher pagination.PageFetcher, notifier pagination.Notifier) *pagination.Coordinator {
	return pagination.NewCoordinator(fetcher, notifier, pagination.Config{
		PageSize:                    cfg.Feed.PageSize,
		ChannelID:                   cfg.Notification.ChannelID,
		FetchRegardlessOfPermission: cfg.Feed.FetchRegardlessOfPermission,
	})
}

// openTodoStore opens the configured todo backend. Redis is pinged first so a
// missing server fails fast.
func openTodoStore(ctx context.Context, cfg config.Config) (todo.Store, error) {
	key := todo.Key{Namespace: cfg.Todo.Namespace, Name: "root"}

	switch cfg.Todo.Store {
	case config.StoreRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Todo.RedisAddr,
			DB:   cfg.Todo.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Todo.RedisAddr, err)
		}
		log.Debug().Str("addr", cfg.Todo.RedisAddr).Msg("Connected to Redis")
		return &redisTodoStore{RedisStore: todo.NewRedisStore(redisClient, key), client: redisClient}, nil
	case config.StoreSQLite:
		return todo.OpenSQLiteStore(cfg.Todo.SQLitePath, key)
	case config.StoreMemory:
		return todo.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown todo store %q", cfg.Todo.Store)
	}
}

// redisTodoStore closes the Redis client it was opened with.
type redisTodoStore struct {
	*todo.RedisStore
	client *redis.Client
}

func (s *redisTodoStore) Close() error {
	return s.client.Close()
}
