package cachedresults

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const DefaultExpiration = 90 * time.Minute

type Cache struct {
	Cache *cache.Cache[string]
}

func (c *Cache) Setup(client *redis.Client, expiration time.Duration) {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	c.Cache = cache.New[string](redisStore)
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.Cache.Get(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key string, value string) error {
	return c.Cache.Set(ctx, key, value)
}
