package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandanksingh/secure-user-api/internal/config"
)

type testUserView struct {
	Username string
	Email    string
}

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := testUserView{Username: "alice", Email: "alice@example.com"}
	err := cache.Set("user:550e8400", expected, time.Minute)
	require.NoError(t, err)

	var actual testUserView
	found, err := cache.Get("user:550e8400", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out testUserView
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Set("user:to-delete", testUserView{Username: "bob"}, time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate("user:to-delete")
	require.NoError(t, err)

	var out testUserView
	found, err := cache.Get("user:to-delete", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
