// Package local provides in-process session stores for single-instance deployments
// and tests. State is lost on restart.
package local

import (
	"context"
	"sync"
	"time"

	"accounts/internal/domain/service"
)

type tokenDenylist struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewTokenDenylist returns a map-backed denylist. Expired entries are dropped lazily.
func NewTokenDenylist() service.TokenDenylist {
	return &tokenDenylist{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (d *tokenDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.sweep(now)
	d.expires[tokenID] = now.Add(ttl)

	return nil
}

func (d *tokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.expires[tokenID]
	if !ok {
		return false, nil
	}
	if !d.now().Before(exp) {
		delete(d.expires, tokenID)

		return false, nil
	}

	return true, nil
}

func (d *tokenDenylist) sweep(now time.Time) {
	for id, exp := range d.expires {
		if !now.Before(exp) {
			delete(d.expires, id)
		}
	}
}
