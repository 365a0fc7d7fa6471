package problem

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/haeun-dev/seaturtle-soup/internal/db/repository"
)

const defaultCacheTTL = 10 * time.Minute

// Cache provides Redis-backed problem lookups so repeated detail and ask
// requests skip the database. Postgres stays the source of truth; a cache
// failure is treated as a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ detailCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(id int64) string {
	return "problem:" + strconv.FormatInt(id, 10)
}

func (c *Cache) Get(ctx context.Context, id int64) (*repository.Problem, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var p repository.Problem
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Cache) Set(ctx context.Context, p repository.Problem) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(p.ID), data, c.ttl).Err()
}
