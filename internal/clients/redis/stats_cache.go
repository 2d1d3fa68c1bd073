package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/utils"
)

// StatsCache is the key-value collaborator the summary-statistics report
// writes through. Entries expire on their TTL; nothing invalidates them early.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

type statsCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewStatsCache(log *logger.Logger) (StatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "localhost:6379", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewStatsCacheWithClient(log, rdb), nil
}

// NewStatsCacheWithClient wraps an existing client; tests hand in a client
// pointed at a miniredis instance.
func NewStatsCacheWithClient(log *logger.Logger, rdb *goredis.Client) StatsCache {
	return &statsCache{
		log: log.With("service", "StatsCache"),
		rdb: rdb,
	}
}

func (c *statsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, true, nil
}

func (c *statsCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *statsCache) Close() error {
	return c.rdb.Close()
}
