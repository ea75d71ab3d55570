package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return client, mr
}

func TestRedisRevoker(t *testing.T) {
	client, mr := setupTestRedis(t)
	revoker := NewRedisRevoker(client)
	ctx := context.Background()

	revoked, err := revoker.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, revoker.Revoke(ctx, "abc", time.Minute))
	assert.True(t, mr.Exists("revoked_token:abc"))
	assert.Equal(t, time.Minute, mr.TTL("revoked_token:abc"))

	revoked, err = revoker.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = revoker.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevoker_NonPositiveTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	revoker := NewRedisRevoker(client)

	require.NoError(t, revoker.Revoke(context.Background(), "gone", 0))
	assert.False(t, mr.Exists("revoked_token:gone"))
}

func TestRedisRevoker_ServerDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	revoker := NewRedisRevoker(client)
	mr.Close()

	_, err := revoker.IsRevoked(context.Background(), "abc")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	_, mr := setupTestRedis(t)

	client, err := NewClient(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	_, err = NewClient(context.Background(), "127.0.0.1:1", "")
	assert.Error(t, err)
}
