package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartenglish_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

// SummaryCache 学习汇总缓存。每个学员有一个版本号，失效时版本号自增，旧键随 TTL 过期。
type SummaryCache struct {
	Redis *redis.Client
}

func NewSummaryCache(rdb *redis.Client) *SummaryCache {
	return &SummaryCache{Redis: rdb}
}

func versionKey(userID uint) string {
	return fmt.Sprintf("summary:ver:%d", userID)
}

func (c *SummaryCache) key(ctx context.Context, userID uint, window string) (string, error) {
	ver, err := c.Redis.Get(ctx, versionKey(userID)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("summary:%d:%d:%s", userID, ver, window), nil
}

func (c *SummaryCache) Get(ctx context.Context, userID uint, window string) (*model.ProgressSummary, bool) {
	key, err := c.key(ctx, userID, window)
	if err != nil {
		return nil, false
	}
	data, err := c.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var s model.ProgressSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (c *SummaryCache) Set(ctx context.Context, userID uint, window string, s *model.ProgressSummary, ttl time.Duration) error {
	key, err := c.key(ctx, userID, window)
	if err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, key, data, ttl).Err()
}

func (c *SummaryCache) Invalidate(ctx context.Context, userID uint) error {
	return c.Redis.Incr(ctx, versionKey(userID)).Err()
}
