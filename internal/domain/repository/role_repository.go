package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRoleNotFound is returned when a role is not found.
var ErrRoleNotFound = errors.New("role not found")

// SlugChecker answers whether a slug is already taken.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// RoleRepository defines the standard operations for role persistence.
type RoleRepository interface {
	SlugChecker

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Role, error)

	// Create persists a new role. A duplicate name or slug surfaces as
	// domain errors.ErrRoleAlreadyExists.
	Create(ctx context.Context, role *entity.Role) error
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts ListOptions) ([]*entity.Role, error)
	Count(ctx context.Context) (int64, error)
}
