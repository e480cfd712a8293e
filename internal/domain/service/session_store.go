package service

import (
	"context"
	"time"
)

// TokenDenylist remembers revoked token IDs until the tokens would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginThrottle limits failed sign-in attempts per key (normally the email).
type LoginThrottle interface {
	// Allow reports whether another attempt is permitted and, if not, how long to wait.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)

	// Fail records a failed attempt.
	Fail(ctx context.Context, key string) error

	// Reset clears the counter after a successful sign-in.
	Reset(ctx context.Context, key string) error
}
