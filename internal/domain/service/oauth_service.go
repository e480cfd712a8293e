package service

import (
	"context"

	"accounts/internal/domain/entity"
)

// OAuthUser is the identity asserted by a verified provider token.
type OAuthUser struct {
	ID            string // provider subject ("sub")
	Email         string
	Name          string
	Provider      entity.ProviderType
	EmailVerified bool
}

// OAuthAuthService verifies ID tokens issued by an external provider.
type OAuthAuthService interface {
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
	GetProvider() entity.ProviderType
}
