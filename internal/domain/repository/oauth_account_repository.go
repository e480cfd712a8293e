package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"
)

// ErrOAuthAccountNotFound is returned when no user is linked to an external identity.
var ErrOAuthAccountNotFound = errors.New("oauth account not found")

// OAuthAccountRepository persists links between users and external identities.
type OAuthAccountRepository interface {
	// FindByProviderAccount looks up a link by provider and the provider's subject.
	FindByProviderAccount(ctx context.Context, provider entity.ProviderType, accountID string) (*entity.OAuthAccount, error)

	// Create links an external identity. A duplicate link surfaces as
	// domain errors.ErrOAuthAccountLinked.
	Create(ctx context.Context, account *entity.OAuthAccount) error
}
