package redis

import (
	"context"
	"time"

	"accounts/internal/domain/service"
	"accounts/internal/errors"

	"github.com/redis/go-redis/v9"
)

// failScript increments the counter and starts the window on the first failure.
var failScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// allowScript returns {allowed, retry_after_ms}.
var allowScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
if count < tonumber(ARGV[1]) then
	return {1, 0}
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	ttl = 0
end
return {0, ttl}
`)

type loginThrottle struct {
	client      redis.Cmdable
	prefix      string
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle allows maxAttempts failures per key within a fixed window.
func NewLoginThrottle(client redis.Cmdable, prefix string, maxAttempts int, window time.Duration) service.LoginThrottle {
	return &loginThrottle{
		client:      client,
		prefix:      prefix + ":login:",
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (t *loginThrottle) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	res, err := allowScript.Run(ctx, t.client, []string{t.prefix + key}, t.maxAttempts).Int64Slice()
	if err != nil {
		return false, 0, errors.Wrap(err, "check login throttle")
	}
	if len(res) != 2 {
		return false, 0, errors.Errorf("unexpected throttle reply: %v", res)
	}

	return res[0] == 1, time.Duration(res[1]) * time.Millisecond, nil
}

func (t *loginThrottle) Fail(ctx context.Context, key string) error {
	if err := failScript.Run(ctx, t.client, []string{t.prefix + key}, t.window.Milliseconds()).Err(); err != nil {
		return errors.Wrap(err, "record failed login")
	}

	return nil
}

func (t *loginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, t.prefix+key).Err(); err != nil {
		return errors.Wrap(err, "reset login throttle")
	}

	return nil
}
