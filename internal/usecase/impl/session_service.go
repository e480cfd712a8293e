package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	accounts     usecase.AccountUsecase
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	tokenService service.TokenService
	denylist     service.TokenDenylist
	throttle     service.LoginThrottle
	googleAuth   service.OAuthAuthService
	metrics      service.AccountMetrics
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// SessionDependencies groups the collaborators of the session service.
type SessionDependencies struct {
	Accounts     usecase.AccountUsecase
	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Denylist     service.TokenDenylist
	Throttle     service.LoginThrottle
	GoogleAuth   service.OAuthAuthService // Optional; nil disables Google sign-in.
	Metrics      service.AccountMetrics
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(deps SessionDependencies) usecase.SessionUsecase {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = service.NoopMetrics{}
	}

	return &sessionService{
		accounts:     deps.Accounts,
		txManager:    deps.TxManager,
		userRepo:     deps.UserRepo,
		tokenService: deps.TokenService,
		denylist:     deps.Denylist,
		throttle:     deps.Throttle,
		googleAuth:   deps.GoogleAuth,
		metrics:      metrics,
		publisher:    deps.Publisher,
		logger:       deps.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login authenticates and issues a token pair. Only wrong credentials count
// towards the throttle; a throttle backend failure lets the attempt through.
func (srv *sessionService) Login(ctx context.Context, email, password string) (*usecase.Session, error) {
	key := throttleKey(email)

	allowed, retryAfter, err := srv.throttle.Allow(ctx, key)
	if err != nil {
		srv.log(ctx).Warn("Login throttle unavailable", slog.Any("error", err))
	} else if !allowed {
		srv.metrics.ObserveAuthentication(service.AuthOutcomeThrottled)
		srv.log(ctx).Info("Login throttled", slog.String("email", email), slog.Duration("retryAfter", retryAfter))

		return nil, errors.WithStack(domainerrors.ErrTooManyLoginAttempts.WithDetails(
			"retry after " + retryAfter.Round(time.Second).String(),
		))
	}

	user, err := srv.accounts.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			if failErr := srv.throttle.Fail(ctx, key); failErr != nil {
				srv.log(ctx).Warn("Failed to record login failure", slog.Any("error", failErr))
			}
		}

		return nil, err
	}

	if err := srv.throttle.Reset(ctx, key); err != nil {
		srv.log(ctx).Warn("Failed to reset login throttle", slog.Any("error", err))
	}

	return srv.issueSession(ctx, user)
}

func (srv *sessionService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken, service.TokenTypeRefresh)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
	}

	revoked, err := srv.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return nil, errors.WithStack(domainerrors.ErrTokenInvalid)
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.WithStack(domainerrors.ErrTokenInvalid)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if !user.IsActive {
		return nil, errors.WithStack(domainerrors.ErrAccountInactive)
	}

	accessToken, expiresAt, err := srv.tokenService.GenerateAccessToken(user.ID, tokenRoles(user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.RefreshOutput{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Logout denylists the token IDs for the rest of their lifetime. A refresh
// token that does not validate or belongs to someone else is ignored.
func (srv *sessionService) Logout(ctx context.Context, access *service.Claims, refreshToken string) error {
	if access == nil {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	if err := srv.denylist.Revoke(ctx, access.TokenID, time.Until(access.ExpiresAt)); err != nil {
		return errors.Wrap(err, "failed to revoke access token")
	}

	if refreshToken != "" {
		claims, err := srv.tokenService.ValidateToken(refreshToken, service.TokenTypeRefresh)
		switch {
		case err != nil:
			srv.log(ctx).Debug("Ignoring invalid refresh token on logout", slog.Any("error", err))
		case claims.UserID != access.UserID:
			srv.log(ctx).Warn("Refresh token on logout belongs to another user", slog.String("userID", access.UserID.String()))
		default:
			if err := srv.denylist.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
				return errors.Wrap(err, "failed to revoke refresh token")
			}
		}
	}

	srv.log(ctx).Info("User logged out", slog.String("userID", access.UserID.String()))

	return nil
}

// LoginWithGoogle resolves the account by linked identity, then by email, and
// creates a password-less account when neither exists.
func (srv *sessionService) LoginWithGoogle(ctx context.Context, idToken string) (*usecase.Session, error) {
	if srv.googleAuth == nil {
		return nil, errors.WithStack(domainerrors.ErrOAuthNotConfigured)
	}

	oauthUser, err := srv.googleAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		srv.log(ctx).Info("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOAuthTokenInvalid, err.Error())
	}

	var user *entity.User
	created := false
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		oauthRepo := repoFactory.OAuthAccountRepo()

		link, err := oauthRepo.FindByProviderAccount(ctx, oauthUser.Provider, oauthUser.ID)
		if err == nil {
			user, err = userRepo.FindByID(ctx, link.UserID)

			return mapUserError(err)
		}
		if !errors.Is(err, repository.ErrOAuthAccountNotFound) {
			return errors.Wrap(err, "failed to find oauth account")
		}

		user, err = userRepo.FindByEmail(ctx, oauthUser.Email)
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			user = &entity.User{
				Email:      oauthUser.Email,
				Name:       oauthUser.Name,
				IsActive:   true,
				IsVerified: oauthUser.EmailVerified,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				return err
			}
			created = true
		case err != nil:
			return errors.Wrap(err, "failed to find user by email")
		}

		return oauthRepo.Create(ctx, &entity.OAuthAccount{
			UserID:       user.ID,
			Provider:     oauthUser.Provider,
			AccountID:    oauthUser.ID,
			AccountEmail: oauthUser.Email,
		})
	})
	if err != nil {
		srv.log(ctx).Warn("Google sign-in failed", slog.String("email", oauthUser.Email), slog.Any("error", err))

		return nil, err
	}

	if created {
		srv.metrics.ObserveRegistration(registrationOutcomeSuccess)
		publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.AccountEvent{
			Type:   entity.EventUserRegistered,
			UserID: &user.ID,
			Email:  user.Email,
		})
	}

	if !user.IsActive {
		srv.metrics.ObserveAuthentication(service.AuthOutcomeInactive)

		return nil, errors.WithStack(domainerrors.ErrAccountInactive)
	}
	srv.metrics.ObserveAuthentication(service.AuthOutcomeSuccess)

	return srv.issueSession(ctx, user)
}

func (srv *sessionService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return srv.accounts.GetUser(ctx, userID)
}

func (srv *sessionService) issueSession(ctx context.Context, user *entity.User) (*usecase.Session, error) {
	tokens, err := srv.tokenService.GenerateTokens(user.ID, tokenRoles(user))
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.String("userID", user.ID.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Info("User signed in", slog.String("userID", user.ID.String()))

	return &usecase.Session{User: user, Tokens: tokens}, nil
}

// tokenRoles returns the role slugs carried in access tokens. The superuser
// claim comes from IsSuperuser only, never from a stored role slug. Claims are
// fixed at issue time: a demotion or deactivation takes effect on the next
// login or refresh, at the latest when the access token expires.
func tokenRoles(user *entity.User) []string {
	roles := slices.DeleteFunc(user.RoleSlugs(), func(slug string) bool {
		return slug == entity.SuperuserRole
	})
	if user.IsSuperuser {
		roles = append(roles, entity.SuperuserRole)
	}

	return roles
}

func throttleKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
