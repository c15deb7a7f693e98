package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/maheshrc27/content-planner/internal/transfer"
	"github.com/redis/go-redis/v9"
)

const quoteKeyPrefix = "quote_of_the_day:"

type QuoteCache interface {
	Get(ctx context.Context, day string) (*transfer.Quote, error)
	Set(ctx context.Context, day string, quote *transfer.Quote, ttl time.Duration) error
}

// NewRedisClient accepts either a redis:// URL or a bare host:port.
func NewRedisClient(uri string) (*redis.Client, error) {
	if strings.Contains(uri, "://") {
		opts, err := redis.ParseURL(uri)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: uri, DB: 0}), nil
}

type redisQuoteCache struct {
	rdb *redis.Client
}

func NewRedisQuoteCache(rdb *redis.Client) QuoteCache {
	return &redisQuoteCache{rdb: rdb}
}

// Get returns nil, nil on a cache miss.
func (c *redisQuoteCache) Get(ctx context.Context, day string) (*transfer.Quote, error) {
	raw, err := c.rdb.Get(ctx, quoteKeyPrefix+day).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var quote transfer.Quote
	if err := json.Unmarshal(raw, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *redisQuoteCache) Set(ctx context.Context, day string, quote *transfer.Quote, ttl time.Duration) error {
	raw, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, quoteKeyPrefix+day, raw, ttl).Err()
}
