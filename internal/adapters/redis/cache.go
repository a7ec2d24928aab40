package redis

import (
	"github.com/redis/go-redis/v9"
)

// Cache wraps the shared redis client. Only the rate limiter uses it; the
// booking core itself never touches redis.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Client() *redis.Client {
	return c.client
}
