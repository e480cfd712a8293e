package entity

import (
	"time"

	"github.com/google/uuid"
)

// SuperuserRole is the role claim granted to superusers in access tokens.
const SuperuserRole = "superuser"

// Role is a named permission grouping with a unique URL-safe slug.
type Role struct {
	ID          uuid.UUID
	Name        string // Unique.
	Slug        string // Unique, derived from Name when not supplied.
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
