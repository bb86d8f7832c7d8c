package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/FACorreiaa/wanderspark-api/config"
)

// Cache stores lookup results by key. Values round-trip through dst, which
// must be a pointer.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// NewCache picks the backend from config. "memory" is the default.
func NewCache(cfg config.CacheConfig) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryCache(cfg.TTL, cfg.Cleanup), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisCache(client, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown suggestion cache backend %q", cfg.Backend)
	}
}

type MemoryCache struct {
	c *cache.Cache
}

func NewMemoryCache(ttl, cleanup time.Duration) *MemoryCache {
	return &MemoryCache{c: cache.New(ttl, cleanup)}
}

func (m *MemoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	cached, found := m.c.Get(key)
	if !found {
		return false, nil
	}
	raw, ok := cached.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected cache entry type %T for %s", cached, key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

// Set stores an encoded copy so callers never share slices with the cache.
func (m *MemoryCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	m.c.Set(key, raw, cache.DefaultExpiration)
	return nil
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "wanderspark:suggestions:"}
}

func (r *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
