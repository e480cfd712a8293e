package impl

import (
	"context"
	"testing"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/infra/auth"
	"accounts/internal/infra/cache/local"
	"accounts/internal/infra/persistence/memory"
	mockSvc "accounts/internal/mocks/service"
	"accounts/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionServiceFixtures struct {
	service    usecase.SessionUsecase
	accounts   usecase.AccountUsecase
	store      *memory.Store
	tokens     service.TokenService
	googleAuth *mockSvc.MockOAuthAuthService
}

// createTestSessionService wires the real in-memory stack with a three-attempt throttle.
func createTestSessionService(t *testing.T, throttle service.LoginThrottle) sessionServiceFixtures {
	t.Helper()

	cfg := newTestConfig()
	store := memory.NewStore()
	logger := newDiscardLogger()
	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Maybe()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	if throttle == nil {
		throttle = local.NewLoginThrottle(3, time.Minute)
	}

	accounts := NewAccountService(store, store.UserRepo(), auth.NewBcryptHasherWithCost(4), publisher, service.NoopMetrics{}, cfg, logger)
	googleAuth := mockSvc.NewMockOAuthAuthService(t)

	return sessionServiceFixtures{
		service: NewSessionService(SessionDependencies{
			Accounts:     accounts,
			TxManager:    store,
			UserRepo:     store.UserRepo(),
			TokenService: tokens,
			Denylist:     local.NewTokenDenylist(),
			Throttle:     throttle,
			GoogleAuth:   googleAuth,
			Publisher:    publisher,
			Logger:       logger,
		}),
		accounts:   accounts,
		store:      store,
		tokens:     tokens,
		googleAuth: googleAuth,
	}
}

func registerUser(t *testing.T, accounts usecase.AccountUsecase, email, password string) *entity.User {
	t.Helper()

	user, err := accounts.Register(context.Background(), &usecase.RegisterInput{Email: email, Name: "Test", Password: password})
	require.NoError(t, err)

	return user
}

func TestSessionService_LoginIssuesTokens(t *testing.T) {
	fx := createTestSessionService(t, nil)
	ctx := context.Background()
	user := registerUser(t, fx.accounts, "a@x.com", "secret1")

	session, err := fx.service.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)

	claims, err := fx.tokens.ValidateToken(session.Tokens.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Empty(t, claims.Roles)

	profile, err := fx.service.Profile(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", profile.Email)
}

func TestSessionService_SuperuserClaim(t *testing.T) {
	fx := createTestSessionService(t, nil)
	registerUser(t, fx.accounts, "admin@x.com", "secret1")

	session, err := fx.service.Login(context.Background(), "admin@x.com", "secret1")
	require.NoError(t, err)
	assert.True(t, session.User.IsSuperuser)

	claims, err := fx.tokens.ValidateToken(session.Tokens.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Contains(t, claims.Roles, entity.SuperuserRole)
}

func TestSessionService_LoginFailures(t *testing.T) {
	fx := createTestSessionService(t, nil)
	ctx := context.Background()
	user := registerUser(t, fx.accounts, "a@x.com", "secret1")

	_, unknownErr := fx.service.Login(ctx, "nobody@x.com", "secret1")
	_, wrongErr := fx.service.Login(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, errors.Cause(unknownErr).Error(), errors.Cause(wrongErr).Error())

	inactive := false
	_, err := fx.accounts.UpdateUser(ctx, user.ID, &usecase.UpdateUserInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrAccountInactive)
}

func TestSessionService_LoginThrottle(t *testing.T) {
	fx := createTestSessionService(t, nil)
	ctx := context.Background()
	registerUser(t, fx.accounts, "a@x.com", "secret1")

	for range 3 {
		_, err := fx.service.Login(ctx, "A@x.com", "wrong-password")
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}

	_, err := fx.service.Login(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrTooManyLoginAttempts)
}

func TestSessionService_ThrottleBackendFailureLetsLoginThrough(t *testing.T) {
	throttle := mockSvc.NewMockLoginThrottle(t)
	fx := createTestSessionService(t, throttle)
	registerUser(t, fx.accounts, "a@x.com", "secret1")

	throttle.EXPECT().Allow(mock.Anything, "a@x.com").Return(false, time.Duration(0), errors.New("redis down")).Once()
	throttle.EXPECT().Reset(mock.Anything, "a@x.com").Return(errors.New("redis down")).Once()

	session, err := fx.service.Login(context.Background(), "a@x.com", "secret1")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Tokens.AccessToken)
}

func TestSessionService_RefreshAndLogout(t *testing.T) {
	fx := createTestSessionService(t, nil)
	ctx := context.Background()
	registerUser(t, fx.accounts, "a@x.com", "secret1")

	session, err := fx.service.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	refreshed, err := fx.service.Refresh(ctx, session.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = fx.service.Refresh(ctx, session.Tokens.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	access, err := fx.tokens.ValidateToken(session.Tokens.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	require.NoError(t, fx.service.Logout(ctx, access, session.Tokens.RefreshToken))

	_, err = fx.service.Refresh(ctx, session.Tokens.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	assert.ErrorIs(t, fx.service.Logout(ctx, nil, ""), domainerrors.ErrUnauthorized)
}

func TestSessionService_LoginWithGoogle(t *testing.T) {
	fx := createTestSessionService(t, nil)
	ctx := context.Background()
	googleUser := &service.OAuthUser{ID: "sub-1", Email: "g@x.com", Name: "G", Provider: entity.ProviderGoogle, EmailVerified: true}
	fx.googleAuth.EXPECT().VerifyIDToken(mock.Anything, "good-token").Return(googleUser, nil).Times(2)

	first, err := fx.service.LoginWithGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, "g@x.com", first.User.Email)
	assert.True(t, first.User.IsVerified)
	assert.False(t, first.User.HasPassword())

	second, err := fx.service.LoginWithGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	total, err := fx.accounts.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// The Google-only account has no password to sign in with.
	_, err = fx.service.Login(ctx, "g@x.com", "anything")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_LoginWithGoogleLinksExistingEmail(t *testing.T) {
	fx := createTestSessionService(t, nil)
	ctx := context.Background()
	user := registerUser(t, fx.accounts, "a@x.com", "secret1")

	fx.googleAuth.EXPECT().VerifyIDToken(mock.Anything, "token").
		Return(&service.OAuthUser{ID: "sub-2", Email: "a@x.com", Provider: entity.ProviderGoogle}, nil).Once()

	session, err := fx.service.LoginWithGoogle(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)

	link, err := fx.store.OAuthAccountRepo().FindByProviderAccount(ctx, entity.ProviderGoogle, "sub-2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, link.UserID)
}

func TestSessionService_LoginWithGoogleRejectsBadToken(t *testing.T) {
	fx := createTestSessionService(t, nil)

	fx.googleAuth.EXPECT().VerifyIDToken(mock.Anything, "bad").Return(nil, errors.New("audience mismatch")).Once()

	_, err := fx.service.LoginWithGoogle(context.Background(), "bad")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthTokenInvalid)

	disabled := NewSessionService(SessionDependencies{Logger: newDiscardLogger()})
	_, err = disabled.LoginWithGoogle(context.Background(), "bad")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthNotConfigured)
}

func TestTokenRoles_SuperuserClaimComesFromFlagOnly(t *testing.T) {
	stored := &entity.User{Roles: []entity.UserRole{{RoleSlug: entity.SuperuserRole}, {RoleSlug: "editors"}}}
	assert.Equal(t, []string{"editors"}, tokenRoles(stored))

	stored.IsSuperuser = true
	assert.Equal(t, []string{"editors", entity.SuperuserRole}, tokenRoles(stored))
}
