package redis

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kaushikharsh25/sbms/module/core/internal/repository/routing"
)

var _ routing.Cache = (*EtaCache)(nil)

// EtaCache keeps resolved durations in redis. A broken cache never breaks
// an ETA request; errors are logged and treated as misses.
type EtaCache struct {
	rdb *redis.Client
}

func NewEtaCache(rdb *redis.Client) *EtaCache {
	return &EtaCache{rdb: rdb}
}

func (c *EtaCache) Get(ctx context.Context, key string) (int, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("eta cache get %s: %v", key, err)
		}
		return 0, false
	}
	seconds, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return seconds, true
}

func (c *EtaCache) Set(ctx context.Context, key string, seconds int, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, seconds, ttl).Err(); err != nil {
		log.Printf("eta cache set %s: %v", key, err)
	}
}
