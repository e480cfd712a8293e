package service

import (
	"context"

	"accounts/internal/domain/repository"
)

// SlugAssigner resolves a unique URL-safe slug for a display name.
type SlugAssigner interface {
	// EnsureSlug returns existing unchanged when it is set, otherwise the first
	// free variant of the slugified name.
	EnsureSlug(ctx context.Context, name, existing string, checker repository.SlugChecker) (string, error)
}
