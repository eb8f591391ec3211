// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/langdata/internal/platform/constants"
)

// RedisDateCache implements [DateCache] as one JSON list under
// [constants.RedisKeyHarvestDates].
type RedisDateCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisDateCache wraps a connected client. Entries expire after ttl even
// without an explicit invalidation, which bounds staleness across replicas.
func NewRedisDateCache(client redis.Cmdable, ttl time.Duration) *RedisDateCache {
	return &RedisDateCache{client: client, ttl: ttl}
}

func (cache *RedisDateCache) Dates(context context.Context) ([]string, bool, error) {
	data, err := cache.client.Get(context, constants.RedisKeyHarvestDates).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog: read cached dates: %w", err)
	}

	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, false, fmt.Errorf("catalog: decode cached dates: %w", err)
	}
	return dates, true, nil
}

func (cache *RedisDateCache) StoreDates(context context.Context, dates []string) error {
	data, err := json.Marshal(nonNil(dates))
	if err != nil {
		return err
	}
	if err := cache.client.Set(context, constants.RedisKeyHarvestDates, data, cache.ttl).Err(); err != nil {
		return fmt.Errorf("catalog: cache dates: %w", err)
	}
	return nil
}

func (cache *RedisDateCache) Invalidate(context context.Context) error {
	if err := cache.client.Del(context, constants.RedisKeyHarvestDates).Err(); err != nil {
		return fmt.Errorf("catalog: invalidate cached dates: %w", err)
	}
	return nil
}
