package impl

import (
	"context"
	"strconv"

	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"
	"accounts/internal/util"
)

const defaultSlugMaxAttempts = 100

type slugAssigner struct {
	maxAttempts int
	metrics     service.AccountMetrics
}

// NewSlugAssigner returns a SlugAssigner that tries at most maxAttempts candidates.
func NewSlugAssigner(maxAttempts int, metrics service.AccountMetrics) service.SlugAssigner {
	if maxAttempts <= 0 {
		maxAttempts = defaultSlugMaxAttempts
	}
	if metrics == nil {
		metrics = service.NoopMetrics{}
	}

	return &slugAssigner{maxAttempts: maxAttempts, metrics: metrics}
}

// EnsureSlug walks base, base-1, base-2, ... until the checker reports a free slug.
// The unique index on insert still decides races between concurrent writers.
func (a *slugAssigner) EnsureSlug(ctx context.Context, name, existing string, checker repository.SlugChecker) (string, error) {
	if existing != "" {
		return existing, nil
	}

	base := util.Slugify(name)
	if base == "" {
		return "", domainerrors.Validation("name does not contain any characters usable in a slug")
	}

	for attempt := range a.maxAttempts {
		candidate := base
		if attempt > 0 {
			candidate = base + "-" + strconv.Itoa(attempt)
		}

		taken, err := checker.SlugExists(ctx, candidate)
		if err != nil {
			return "", errors.Wrap(err, "failed to check slug")
		}
		if !taken {
			return candidate, nil
		}

		a.metrics.ObserveSlugCollision()
	}

	return "", errors.WithStack(domainerrors.ErrSlugUnavailable.WithDetails(base))
}
