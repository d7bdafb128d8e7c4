package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/joaobatista235/know-your-fan/internal/domain/model"
)

const fanCachePrefix = "fans:owner:"

// FanCacheRepo keeps the serialized fan aggregate keyed by owner id.
// A stale or unreadable entry is treated as a miss, never as an error.
type FanCacheRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewFanCacheRepo(client *goredis.Client, ttl time.Duration) *FanCacheRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FanCacheRepo{client: client, ttl: ttl}
}

func (r *FanCacheRepo) Get(ctx context.Context, ownerID string) (*model.Fan, bool, error) {
	if r.client == nil || strings.TrimSpace(ownerID) == "" {
		return nil, false, nil
	}

	raw, err := r.client.Get(ctx, fanCacheKey(ownerID)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached fan: %w", err)
	}

	var fan model.Fan
	if err := json.Unmarshal(raw, &fan); err != nil {
		_ = r.client.Del(ctx, fanCacheKey(ownerID)).Err()
		return nil, false, nil
	}

	return &fan, true, nil
}

func (r *FanCacheRepo) Set(ctx context.Context, fan *model.Fan) error {
	if r.client == nil || fan == nil || strings.TrimSpace(fan.OwnerID) == "" {
		return nil
	}

	raw, err := json.Marshal(fan)
	if err != nil {
		return fmt.Errorf("marshal fan for cache: %w", err)
	}
	if err := r.client.Set(ctx, fanCacheKey(fan.OwnerID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set cached fan: %w", err)
	}

	return nil
}

func (r *FanCacheRepo) Invalidate(ctx context.Context, ownerID string) error {
	if r.client == nil || strings.TrimSpace(ownerID) == "" {
		return nil
	}
	if err := r.client.Del(ctx, fanCacheKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached fan: %w", err)
	}
	return nil
}

func fanCacheKey(ownerID string) string {
	return fanCachePrefix + ownerID
}
