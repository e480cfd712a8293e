package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, client
}

func TestTokenDenylist(t *testing.T) {
	ctx := context.Background()
	server, client := newTestClient(t)
	denylist := NewTokenDenylist(client, "test")

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, server.Exists("test:revoked:jti-1"))

	server.FastForward(2 * time.Minute)
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-2", 0))
	assert.False(t, server.Exists("test:revoked:jti-2"))
}

func TestLoginThrottle(t *testing.T) {
	ctx := context.Background()
	server, client := newTestClient(t)
	throttle := NewLoginThrottle(client, "test", 2, time.Minute)

	allowed, _, err := throttle.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, throttle.Fail(ctx, "a@x.com"))
	allowed, _, err = throttle.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, throttle.Fail(ctx, "a@x.com"))
	allowed, retryAfter, err := throttle.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)

	// Other keys are unaffected.
	allowed, _, err = throttle.Allow(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	server.FastForward(time.Minute + time.Second)
	allowed, _, err = throttle.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, throttle.Fail(ctx, "a@x.com"))
	require.NoError(t, throttle.Fail(ctx, "a@x.com"))
	require.NoError(t, throttle.Reset(ctx, "a@x.com"))
	allowed, _, err = throttle.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "accounts", KeyPrefix(nil))
}
