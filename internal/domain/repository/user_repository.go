// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ListOptions pages through a collection ordered by creation time.
type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository defines the standard operations for user persistence.
// Users are loaded together with their role associations.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user together with its role associations.
	// A duplicate email surfaces as domain errors.ErrEmailAlreadyRegistered.
	Create(ctx context.Context, user *entity.User) error

	// Update saves the user's fields and inserts role associations that are not stored yet.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user and its associations.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of users.
	List(ctx context.Context, opts ListOptions) ([]*entity.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)

	// RemoveRole deletes a single role association.
	RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error
}
