package local

import (
	"context"
	"sync"
	"time"

	"accounts/internal/domain/service"
)

type attemptWindow struct {
	count   int
	resetAt time.Time
}

type loginThrottle struct {
	mu          sync.Mutex
	attempts    map[string]attemptWindow
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewLoginThrottle allows maxAttempts failures per key within a fixed window.
func NewLoginThrottle(maxAttempts int, window time.Duration) service.LoginThrottle {
	return &loginThrottle{
		attempts:    make(map[string]attemptWindow),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

func (t *loginThrottle) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	w, ok := t.attempts[key]
	if !ok || !now.Before(w.resetAt) {
		delete(t.attempts, key)

		return true, 0, nil
	}
	if w.count < t.maxAttempts {
		return true, 0, nil
	}

	return false, w.resetAt.Sub(now), nil
}

func (t *loginThrottle) Fail(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	w, ok := t.attempts[key]
	if !ok || !now.Before(w.resetAt) {
		w = attemptWindow{resetAt: now.Add(t.window)}
	}
	w.count++
	t.attempts[key] = w

	return nil
}

func (t *loginThrottle) Reset(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.attempts, key)

	return nil
}

// Unlimited never blocks. It is used when rate limiting is disabled.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, time.Duration, error) { return true, 0, nil }
func (Unlimited) Fail(context.Context, string) error                         { return nil }
func (Unlimited) Reset(context.Context, string) error                        { return nil }
