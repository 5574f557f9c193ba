package tweets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pkgredis "github.com/basedcaster/core/internal/pkg/redis"
)

// PageCache stores raw tweet pages per (username, page).
type PageCache interface {
	GetPage(ctx context.Context, username string, page int) ([]Tweet, bool, error)
	SetPage(ctx context.Context, username string, page int, tweets []Tweet) error
}

// RedisPageCache keeps pages in Redis for a fixed TTL.
type RedisPageCache struct {
	client *pkgredis.Client
	ttl    time.Duration
}

func NewRedisPageCache(client *pkgredis.Client, ttl time.Duration) *RedisPageCache {
	return &RedisPageCache{client: client, ttl: ttl}
}

func pageKey(username string, page int) string {
	return fmt.Sprintf("basedcaster:tweets:%s:%d", strings.ToLower(username), page)
}

func (c *RedisPageCache) GetPage(ctx context.Context, username string, page int) ([]Tweet, bool, error) {
	raw, ok, err := c.client.Get(ctx, pageKey(username, page))
	if err != nil || !ok {
		return nil, false, err
	}
	var tweets []Tweet
	if err := json.Unmarshal([]byte(raw), &tweets); err != nil {
		return nil, false, fmt.Errorf("decode cached page: %w", err)
	}
	return tweets, true, nil
}

func (c *RedisPageCache) SetPage(ctx context.Context, username string, page int, tweets []Tweet) error {
	data, err := json.Marshal(tweets)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pageKey(username, page), data, c.ttl)
}
