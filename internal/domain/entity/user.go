// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in and hold roles.
type User struct {
	ID             uuid.UUID      // Generated at creation.
	Email          string         // Unique login identifier, compared as stored.
	Name           string         // Display name.
	HashedPassword string         // One-way credential hash. Empty for accounts that only sign in through an OAuth provider.
	IsActive       bool           // Inactive accounts can never authenticate.
	IsSuperuser    bool           // Grants access to the administration endpoints.
	IsVerified     bool           // Whether the email address has been confirmed.
	Roles          []UserRole     // Role associations in assignment order.
	OAuthAccounts  []OAuthAccount // Linked external identities.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasPassword reports whether the user has a stored credential hash.
func (u *User) HasPassword() bool {
	return u.HashedPassword != ""
}

// HasRole reports whether a role is already associated with the user.
func (u *User) HasRole(roleID uuid.UUID) bool {
	return slices.ContainsFunc(u.Roles, func(r UserRole) bool {
		return r.RoleID == roleID
	})
}

// RoleSlugs returns the slugs of the loaded role associations.
func (u *User) RoleSlugs() []string {
	slugs := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r.RoleSlug != "" {
			slugs = append(slugs, r.RoleSlug)
		}
	}

	return slugs
}

// UserRole associates a user with a role.
type UserRole struct {
	UserID     uuid.UUID
	RoleID     uuid.UUID
	RoleName   string // Populated when the role is loaded with the user.
	RoleSlug   string // Populated when the role is loaded with the user.
	AssignedAt time.Time
}
