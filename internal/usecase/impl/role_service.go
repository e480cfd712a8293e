package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
)

// roleService implements the RoleUsecase interface.
type roleService struct {
	txManager repository.TransactionManager
	roleRepo  repository.RoleRepository
	slugs     service.SlugAssigner
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewRoleService is the constructor for roleService.
func NewRoleService(
	txManager repository.TransactionManager,
	roleRepo repository.RoleRepository,
	slugs service.SlugAssigner,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.RoleUsecase {
	return &roleService{
		txManager: txManager,
		roleRepo:  roleRepo,
		slugs:     slugs,
		publisher: publisher,
		logger:    logger,
	}
}

func (srv *roleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRole assigns the slug inside the same transaction as the insert.
func (srv *roleService) CreateRole(ctx context.Context, input *usecase.CreateRoleInput) (*entity.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.Validation("role name must not be empty")
	}
	if err := checkReservedSlug(input.Slug); err != nil {
		return nil, err
	}

	role := &entity.Role{
		Name:        name,
		Description: input.Description,
	}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.RoleRepo()

		slug, err := srv.slugs.EnsureSlug(ctx, name, strings.TrimSpace(input.Slug), roleSlugChecker{SlugChecker: roleRepo})
		if err != nil {
			return err
		}
		role.Slug = slug

		return roleRepo.Create(ctx, role)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create role", slog.String("name", name), slog.Any("error", err))

		return nil, mapRoleError(err)
	}

	srv.log(ctx).Info("Role created", slog.String("roleID", role.ID.String()), slog.String("slug", role.Slug))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.AccountEvent{
		Type:   entity.EventRoleCreated,
		RoleID: &role.ID,
	})

	return role, nil
}

// UpdateRole keeps the current slug unless the caller supplies one; an explicit
// empty slug is regenerated from the (possibly new) name.
func (srv *roleService) UpdateRole(ctx context.Context, id uuid.UUID, input *usecase.UpdateRoleInput) (*entity.Role, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domainerrors.Validation("role name must not be empty")
	}
	if input.Slug != nil {
		if err := checkReservedSlug(*input.Slug); err != nil {
			return nil, err
		}
	}

	var updated *entity.Role
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.RoleRepo()

		role, err := roleRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		current := role.Slug
		if input.Name != nil {
			role.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			role.Description = *input.Description
		}
		if input.Slug != nil {
			role.Slug = strings.TrimSpace(*input.Slug)
		}

		role.Slug, err = srv.slugs.EnsureSlug(ctx, role.Name, role.Slug, roleSlugChecker{SlugChecker: roleRepo, own: current})
		if err != nil {
			return err
		}

		if err := roleRepo.Update(ctx, role); err != nil {
			return err
		}
		updated = role

		return nil
	})
	if err != nil {
		return nil, mapRoleError(err)
	}

	srv.log(ctx).Info("Role updated", slog.String("roleID", id.String()))

	return updated, nil
}

func (srv *roleService) GetRole(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	role, err := srv.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRoleError(err)
	}

	return role, nil
}

func (srv *roleService) GetRoleBySlug(ctx context.Context, slug string) (*entity.Role, error) {
	role, err := srv.roleRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, mapRoleError(err)
	}

	return role, nil
}

func (srv *roleService) ListRoles(ctx context.Context, limit, offset int) ([]*entity.Role, int64, error) {
	opts, err := listOptions(limit, offset)
	if err != nil {
		return nil, 0, err
	}

	roles, err := srv.roleRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list roles")
	}

	total, err := srv.roleRepo.Count(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count roles")
	}

	return roles, total, nil
}

func (srv *roleService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RoleRepo().Delete(ctx, id)
	})
	if err != nil {
		return mapRoleError(err)
	}

	srv.log(ctx).Info("Role deleted", slog.String("roleID", id.String()))

	return nil
}

func (srv *roleService) AssignRole(ctx context.Context, userID, roleID uuid.UUID) (*entity.User, error) {
	var user *entity.User
	assigned := false
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.RoleRepo().FindByID(ctx, roleID); err != nil {
			return mapRoleError(err)
		}

		userRepo := repoFactory.UserRepo()
		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return mapUserError(err)
		}

		if !found.HasRole(roleID) {
			appendRoleIfPresent(&roleID, &found.Roles)
			if err := userRepo.Update(ctx, found); err != nil {
				return mapUserError(err)
			}
			assigned = true
		}

		user, err = userRepo.FindByID(ctx, userID)

		return mapUserError(err)
	})
	if err != nil {
		return nil, err
	}

	if assigned {
		srv.log(ctx).Info("Role assigned", slog.String("userID", userID.String()), slog.String("roleID", roleID.String()))
		publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.AccountEvent{
			Type:   entity.EventRoleAssigned,
			UserID: &userID,
			RoleID: &roleID,
			Email:  user.Email,
		})
	}

	return user, nil
}

func (srv *roleService) RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			return mapUserError(err)
		}

		return mapUserError(userRepo.RemoveRole(ctx, userID, roleID))
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Role revoked", slog.String("userID", userID.String()), slog.String("roleID", roleID.String()))

	return nil
}

// roleSlugChecker never hands out the superuser claim as a role slug and lets a
// role keep the slug it already has.
type roleSlugChecker struct {
	repository.SlugChecker
	own string
}

func (c roleSlugChecker) SlugExists(ctx context.Context, slug string) (bool, error) {
	switch slug {
	case entity.SuperuserRole:
		return true, nil
	case c.own:
		if c.own != "" {
			return false, nil
		}
	}

	return c.SlugChecker.SlugExists(ctx, slug)
}

// checkReservedSlug rejects a role slug that would read as the superuser claim.
func checkReservedSlug(slug string) error {
	if strings.TrimSpace(slug) == entity.SuperuserRole {
		return domainerrors.Validation(`role slug "` + entity.SuperuserRole + `" is reserved`)
	}

	return nil
}
