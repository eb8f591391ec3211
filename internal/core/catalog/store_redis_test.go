// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/langdata/internal/core/catalog"
	redisstore "github.com/taibuivan/langdata/internal/platform/redis"
)

// TestRedisDateCache runs against the server named by REDIS_URL.
func TestRedisDateCache(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()

	client, err := redisstore.NewClient(ctx, url, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := catalog.NewRedisDateCache(client, time.Minute)
	require.NoError(t, cache.Invalidate(ctx))

	_, ok, err := cache.Dates(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.StoreDates(ctx, []string{"20170101", "20180501"}))
	dates, ok, err := cache.Dates(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"20170101", "20180501"}, dates)

	require.NoError(t, cache.StoreDates(ctx, nil))
	dates, ok, err = cache.Dates(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "an empty catalog is cached too")
	assert.Empty(t, dates)

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.Dates(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
