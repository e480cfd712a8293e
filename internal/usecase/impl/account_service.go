// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
)

const (
	registrationOutcomeSuccess  = "success"
	registrationOutcomeConflict = "conflict"
	registrationOutcomeInvalid  = "invalid"
	registrationOutcomeError    = "error"

	adminEmailMarker = "admin"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	hasher         service.PasswordHasher
	publisher      service.EventPublisher
	metrics        service.AccountMetrics
	minPassword    int
	maxPassword    int
	maxBytes       int // hasher input limit; 0 means none
	adminPromotion bool
	logger         *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	publisher service.EventPublisher,
	metrics service.AccountMetrics,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AccountUsecase {
	srv := &accountService{
		txManager:   txManager,
		userRepo:    userRepo,
		hasher:      hasher,
		publisher:   publisher,
		metrics:     metrics,
		minPassword: 1,
		logger:      logger,
	}
	if cfg != nil && cfg.PasswordPolicy != nil {
		srv.minPassword = max(cfg.PasswordPolicy.MinLength, 1)
		srv.maxPassword = cfg.PasswordPolicy.MaxLength
	}
	if cfg != nil && cfg.Auth != nil {
		srv.adminPromotion = cfg.Auth.AdminEmailPromotion
		if cfg.Auth.PasswordAlgorithm == config.PasswordAlgorithmBcrypt {
			srv.maxBytes = config.BcryptMaxPasswordBytes
		}
	}
	if srv.metrics == nil {
		srv.metrics = service.NoopMetrics{}
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input before touching storage, then persists the new user.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		srv.metrics.ObserveRegistration(registrationOutcomeInvalid)

		return nil, domainerrors.Validation("email must not be empty")
	}
	if err := srv.validatePassword(input.Password); err != nil {
		srv.metrics.ObserveRegistration(registrationOutcomeInvalid)

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))
		srv.metrics.ObserveRegistration(registrationOutcomeError)

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user := &entity.User{
		Email:          email,
		Name:           strings.TrimSpace(input.Name),
		HashedPassword: hashedPassword,
		IsActive:       true,
	}
	if srv.adminPromotion && strings.Contains(strings.ToLower(email), adminEmailMarker) {
		srv.log(ctx).Warn("Promoting user to superuser based on email address", slog.String("email", email))
		user.IsSuperuser = true
	}
	srv.AppendRoleIfPresent(input.RoleID, &user.Roles)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if input.RoleID != nil {
			if _, err := repoFactory.RoleRepo().FindByID(ctx, *input.RoleID); err != nil {
				return mapRoleError(err)
			}
		}

		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err != nil {
		switch {
		case domainerrors.IsConflict(err):
			srv.metrics.ObserveRegistration(registrationOutcomeConflict)
			srv.log(ctx).Info("Registration rejected, email already registered", slog.String("email", email))

			return nil, err
		case errors.Is(err, domainerrors.ErrRoleNotFound):
			srv.metrics.ObserveRegistration(registrationOutcomeInvalid)

			return nil, err
		}
		srv.metrics.ObserveRegistration(registrationOutcomeError)
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.metrics.ObserveRegistration(registrationOutcomeSuccess)
	srv.log(ctx).Info("User registered", slog.String("userID", user.ID.String()))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.AccountEvent{
		Type:   entity.EventUserRegistered,
		UserID: &user.ID,
		RoleID: input.RoleID,
		Email:  user.Email,
	})

	return user, nil
}

// Authenticate checks the credentials; the account state is only revealed once the password matched.
func (srv *accountService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.metrics.ObserveAuthentication(service.AuthOutcomeInvalidCredentials)

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !user.HasPassword() || !srv.hasher.Check(password, user.HashedPassword) {
		srv.metrics.ObserveAuthentication(service.AuthOutcomeInvalidCredentials)

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if !user.IsActive {
		srv.metrics.ObserveAuthentication(service.AuthOutcomeInactive)

		return nil, errors.WithStack(domainerrors.ErrAccountInactive)
	}

	srv.metrics.ObserveAuthentication(service.AuthOutcomeSuccess)

	return user, nil
}

// UpdatePassword writes the new hash only after every check passed.
func (srv *accountService) UpdatePassword(ctx context.Context, input *usecase.UpdatePasswordInput) error {
	if err := srv.validatePassword(input.NewPassword); err != nil {
		return err
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			return mapUserError(err)
		}

		if !found.HasPassword() || !srv.hasher.Check(input.CurrentPassword, found.HashedPassword) {
			return errors.WithStack(domainerrors.ErrInvalidCredentials)
		}
		if !found.IsActive {
			return errors.WithStack(domainerrors.ErrAccountInactive)
		}

		hashedPassword, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		found.HashedPassword = hashedPassword

		if err := userRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update password")
		}
		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password update failed", slog.String("userID", input.UserID.String()), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Password updated", slog.String("userID", user.ID.String()))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.AccountEvent{
		Type:   entity.EventUserPasswordChanged,
		UserID: &user.ID,
		Email:  user.Email,
	})

	return nil
}

// AppendRoleIfPresent adds a role association unless roleID is nil or already present.
func (srv *accountService) AppendRoleIfPresent(roleID *uuid.UUID, roles *[]entity.UserRole) {
	appendRoleIfPresent(roleID, roles)
}

func (srv *accountService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err)
	}

	return user, nil
}

func (srv *accountService) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	opts, err := listOptions(limit, offset)
	if err != nil {
		return nil, 0, err
	}

	users, err := srv.userRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	total, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	return users, total, nil
}

func (srv *accountService) CountUsers(ctx context.Context) (int64, error) {
	total, err := srv.userRepo.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return total, nil
}

// UpdateUser applies a partial update. Password changes go through UpdatePassword.
func (srv *accountService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	if input.Email != nil && strings.TrimSpace(*input.Email) == "" {
		return nil, domainerrors.Validation("email must not be empty")
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return mapUserError(err)
		}

		if input.Name != nil {
			user.Name = strings.TrimSpace(*input.Name)
		}
		if input.Email != nil {
			user.Email = strings.TrimSpace(*input.Email)
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
		if input.IsSuperuser != nil {
			user.IsSuperuser = *input.IsSuperuser
		}
		if input.IsVerified != nil {
			user.IsVerified = *input.IsVerified
		}
		if input.RoleID != nil {
			if _, err := repoFactory.RoleRepo().FindByID(ctx, *input.RoleID); err != nil {
				return mapRoleError(err)
			}
			appendRoleIfPresent(input.RoleID, &user.Roles)
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return mapUserError(err)
		}

		// Reload so role names and slugs are populated for new associations.
		updated, err = userRepo.FindByID(ctx, id)

		return mapUserError(err)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User updated", slog.String("userID", id.String()))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.AccountEvent{
		Type:   entity.EventUserUpdated,
		UserID: &updated.ID,
		RoleID: input.RoleID,
		Email:  updated.Email,
	})

	return updated, nil
}

// DeleteUser removes the user with its role associations and linked accounts
// in one transaction.
func (srv *accountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Delete(ctx, id)
	})
	if err != nil {
		return mapUserError(err)
	}

	srv.log(ctx).Info("User deleted", slog.String("userID", id.String()))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.AccountEvent{
		Type:   entity.EventUserDeleted,
		UserID: &id,
	})

	return nil
}

func (srv *accountService) validatePassword(password string) error {
	if password == "" {
		return domainerrors.Validation("password must not be empty")
	}

	length := utf8.RuneCountInString(password)
	if length < srv.minPassword {
		return domainerrors.Validation("password is too short")
	}
	if (srv.maxPassword > 0 && length > srv.maxPassword) || (srv.maxBytes > 0 && len(password) > srv.maxBytes) {
		return domainerrors.Validation("password is too long")
	}

	return nil
}

func appendRoleIfPresent(roleID *uuid.UUID, roles *[]entity.UserRole) {
	if roleID == nil || roles == nil {
		return
	}

	for _, r := range *roles {
		if r.RoleID == *roleID {
			return
		}
	}

	*roles = append(*roles, entity.UserRole{RoleID: *roleID, AssignedAt: time.Now()})
}
