package service

import (
	"time"

	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the validated content of a token.
type Claims struct {
	UserID    uuid.UUID
	TokenID   string // jti, used to revoke a single token.
	Roles     []string
	Type      string
	ExpiresAt time.Time
}

// TokenPair is the result of a successful sign-in.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenService defines the interface for generating and validating JWTs.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID, roles []string) (*TokenPair, error)

	// GenerateAccessToken creates an access token only.
	GenerateAccessToken(userID uuid.UUID, roles []string) (token string, expiresAt time.Time, err error)

	// ValidateToken checks signature, expiry and the expected token type.
	ValidateToken(tokenString, tokenType string) (*Claims, error)
}
