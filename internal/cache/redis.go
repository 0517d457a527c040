package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache holds short-lived serialized responses for the read API so
// repeated dashboard queries skip the database.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// GetBytes returns a cached payload and whether it was present. Errors are
// treated as misses; the cache is best-effort.
func (rc *RedisCache) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	payload, err := rc.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetBytes stores a payload with a TTL.
func (rc *RedisCache) SetBytes(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return rc.client.Set(ctx, key, payload, ttl).Err()
}
