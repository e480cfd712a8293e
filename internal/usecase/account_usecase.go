// Package usecase declares the application's operations and their inputs.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	RoleID   *uuid.UUID // Optional role granted at creation.
}

// UpdatePasswordInput carries a password change for an existing account.
type UpdatePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name        *string
	Email       *string
	IsActive    *bool
	IsSuperuser *bool
	IsVerified  *bool
	RoleID      *uuid.UUID
}

// AccountUsecase owns account creation, credential checks and password state.
type AccountUsecase interface {
	// Register validates the input, hashes the password and persists a new user.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Authenticate verifies an email/password pair. Unknown users and wrong
	// passwords fail with the same error.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)

	// UpdatePassword replaces the stored hash after verifying the current password.
	UpdatePassword(ctx context.Context, input *UpdatePasswordInput) error

	// AppendRoleIfPresent adds a role association unless roleID is nil or already present.
	AppendRoleIfPresent(roleID *uuid.UUID, roles *[]entity.UserRole)

	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, int64, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
