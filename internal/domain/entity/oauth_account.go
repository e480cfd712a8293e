package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies an external identity provider.
type ProviderType string

const (
	// ProviderGoogle is Google Sign-In.
	ProviderGoogle ProviderType = "google"
)

// OAuthAccount links an external identity to a user.
type OAuthAccount struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Provider     ProviderType
	AccountID    string // The provider's subject identifier.
	AccountEmail string
	CreatedAt    time.Time
}
