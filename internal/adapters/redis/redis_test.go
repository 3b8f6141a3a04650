package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	addr := os.Getenv("LOJAMIX_TEST_REDIS")
	if addr == "" {
		t.Skip("LOJAMIX_TEST_REDIS not set")
	}
	ctx := context.Background()
	cache := NewCache(Options{Addr: addr, TTL: time.Minute, KeyPrefix: fmt.Sprintf("test%d:", time.Now().UnixNano())})
	t.Cleanup(func() { cache.Close() })
	require.NoError(t, cache.Ping(ctx))

	require.NoError(t, cache.Set(ctx, "orders:1:list", []string{"a", "b"}))
	require.NoError(t, cache.Set(ctx, "orders:10:list", []string{"c"}))

	data, err := cache.Get(ctx, "orders:1:list")
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))

	require.NoError(t, cache.DeleteByPrefix(ctx, "orders:1:"))
	_, err = cache.Get(ctx, "orders:1:list")
	assert.Error(t, err)

	_, err = cache.Get(ctx, "orders:10:list")
	assert.NoError(t, err, "a sibling user's entry must survive")
}
