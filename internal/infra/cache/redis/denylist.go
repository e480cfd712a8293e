package redis

import (
	"context"
	"time"

	"accounts/internal/domain/service"
	"accounts/internal/errors"

	"github.com/redis/go-redis/v9"
)

type tokenDenylist struct {
	client redis.Cmdable
	prefix string
}

// NewTokenDenylist stores revoked token IDs as keys that expire with the token.
func NewTokenDenylist(client redis.Cmdable, prefix string) service.TokenDenylist {
	return &tokenDenylist{client: client, prefix: prefix + ":revoked:"}
}

func (d *tokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to remember.
		return nil
	}

	if err := d.client.Set(ctx, d.prefix+tokenID, 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "revoke token")
	}

	return nil
}

func (d *tokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.prefix+tokenID).Result()
	if err != nil {
		return false, errors.Wrap(err, "check revoked token")
	}

	return n > 0, nil
}
