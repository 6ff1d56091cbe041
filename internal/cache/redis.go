// Package cache wraps the Redis client used for rate limiting and
// best-effort response caching. Everything here fails open: a missing or
// broken Redis never takes the API down.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// InitRedis connects to Redis at addr. On failure the client is left nil and
// callers degrade to uncached behavior.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Client = nil
	}
}

// GetClient returns the shared Redis client, or nil when unavailable.
func GetClient() *redis.Client {
	return Client
}
