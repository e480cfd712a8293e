package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateRoleInput describes a new role. An empty Slug is derived from Name.
type CreateRoleInput struct {
	Name        string
	Slug        string
	Description string
}

// UpdateRoleInput is a partial update. Setting Slug to "" regenerates it from the name.
type UpdateRoleInput struct {
	Name        *string
	Slug        *string
	Description *string
}

// RoleUsecase manages roles and their assignment to users.
type RoleUsecase interface {
	CreateRole(ctx context.Context, input *CreateRoleInput) (*entity.Role, error)
	UpdateRole(ctx context.Context, id uuid.UUID, input *UpdateRoleInput) (*entity.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	GetRoleBySlug(ctx context.Context, slug string) (*entity.Role, error)
	ListRoles(ctx context.Context, limit, offset int) ([]*entity.Role, int64, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error

	// AssignRole associates a role with a user and returns the updated user.
	// Assigning a role the user already holds is a no-op.
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) (*entity.User, error)
	RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error
}
