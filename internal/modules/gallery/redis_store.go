package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgredis "github.com/basedcaster/core/internal/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each gallery as a Redis list of JSON entries, newest at the head.
// Every write or read slides the key's expiry forward by ttl.
type RedisStore struct {
	client *pkgredis.Client
	ttl    time.Duration
}

func NewRedisStore(client *pkgredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func galleryKey(device string) string {
	return "basedcaster:gallery:" + device
}

func (s *RedisStore) Push(ctx context.Context, device string, e Entry, limit int) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	key := galleryKey(device)
	_, err = s.client.Raw().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		if limit > 0 {
			pipe.LTrim(ctx, key, 0, int64(limit-1))
		}
		s.expire(ctx, pipe, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push gallery entry: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, device string) ([]Entry, error) {
	raws, err := s.rawEntries(ctx, device)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if len(raws) > 0 && s.ttl > 0 {
		_ = s.client.Raw().Expire(ctx, galleryKey(device), s.ttl).Err()
	}
	return entries, nil
}

func (s *RedisStore) Remove(ctx context.Context, device string, createdAt int64) (bool, error) {
	raws, err := s.rawEntries(ctx, device)
	if err != nil {
		return false, err
	}
	key := galleryKey(device)
	for _, raw := range raws {
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil || e.CreatedAt != createdAt {
			continue
		}
		removed, err := s.client.Raw().LRem(ctx, key, 1, raw).Result()
		if err != nil {
			return false, fmt.Errorf("remove gallery entry: %w", err)
		}
		return removed > 0, nil
	}
	return false, nil
}

func (s *RedisStore) Clear(ctx context.Context, device string) error {
	return s.client.Del(ctx, galleryKey(device))
}

func (s *RedisStore) rawEntries(ctx context.Context, device string) ([]string, error) {
	raws, err := s.client.Raw().LRange(ctx, galleryKey(device), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read gallery: %w", err)
	}
	return raws, nil
}

func (s *RedisStore) expire(ctx context.Context, pipe redis.Pipeliner, key string) {
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
}
