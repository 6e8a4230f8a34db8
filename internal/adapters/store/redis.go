package store

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "dropoff:plan:"

// RedisConfig configures the Redis connection backing a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisStore keeps planning results as JSON values that expire after ttl,
// so a selection can be served by any server instance.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, prefix: defaultKeyPrefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Save(ctx context.Context, result *domain.PlanningResult) (err error) {
	defer obs.Time(ctx, "plan.store.Save")(&err)

	if result == nil || result.ID == "" {
		return errors.New("redis store: result must have an id")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("redis store: encode plan %s: %w", result.ID, err)
	}
	if err := s.client.Set(ctx, s.key(result.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis store: save plan %s: %w", result.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (_ *domain.PlanningResult, err error) {
	defer obs.Time(ctx, "plan.store.Get")(&err)

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis store: get plan %s: %w", id, err)
	}

	var result domain.PlanningResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("redis store: decode plan %s: %w", id, err)
	}
	return &result, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "plan.store.Delete")(&err)

	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis store: delete plan %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
