package usecase

import (
	"context"
	"time"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/service"

	"github.com/google/uuid"
)

// Session is the result of a successful sign-in.
type Session struct {
	User   *entity.User
	Tokens *service.TokenPair
}

// RefreshOutput holds a newly issued access token.
type RefreshOutput struct {
	AccessToken string
	ExpiresAt   time.Time
}

// SessionUsecase issues and revokes tokens.
type SessionUsecase interface {
	// Login authenticates with email and password, subject to the failed-attempt throttle.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)

	// Logout revokes the access token and, when given, the refresh token.
	Logout(ctx context.Context, access *service.Claims, refreshToken string) error

	// LoginWithGoogle signs in with a Google ID token, linking or creating the account.
	LoginWithGoogle(ctx context.Context, idToken string) (*Session, error)

	// Profile returns the signed-in user.
	Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
