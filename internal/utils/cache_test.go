package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	var dest map[string]int
	found, err := GetCache(ctx, rdb, "counts", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "counts", map[string]int{"users": 3}, time.Minute))

	found, err = GetCache(ctx, rdb, "counts", &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, dest["users"])

	require.NoError(t, DeleteCache(ctx, rdb, "counts"))
	found, err = GetCache(ctx, rdb, "counts", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

// An unreachable Redis must surface an error, never a false hit; callers
// treat that as a cache miss and fall through to the store.
func TestGetCache_UnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()

	var dest map[string]any
	found, err := GetCache(context.Background(), rdb, "some-key", &dest)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestSetCache_UnmarshalableValue(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()

	err := SetCache(context.Background(), rdb, "some-key", make(chan int), 0)
	assert.Error(t, err)
}
