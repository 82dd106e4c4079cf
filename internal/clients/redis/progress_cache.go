package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/studymind/studymind-backend/internal/platform/envutil"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

// ProgressCache reads the ephemeral progress values the processing pipeline
// writes. This side only ever reads.
type ProgressCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Close() error
}

type progressCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewProgressCache(log *logger.Logger) (ProgressCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := envutil.Str("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.Str("REDIS_PASSWORD", ""),
		DialTimeout: 5 * time.Second,
		ReadTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &progressCache{
		log: log.With("client", "ProgressCache"),
		rdb: rdb,
	}, nil
}

func (c *progressCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.rdb == nil {
		return "", false, fmt.Errorf("progress cache not initialized")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *progressCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
