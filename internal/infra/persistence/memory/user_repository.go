package memory

import (
	"context"
	"slices"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	s    *Store
	inTx bool
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.load(u), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.load(r.s.users[id]), nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer r.s.lockWrite(r.inTx)()

	if _, taken := r.s.emails[user.Email]; taken {
		return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
	}
	if user.ID == uuid.Nil {
		user.ID = newID()
	}
	if _, taken := r.s.users[user.ID]; taken {
		return domainerrors.ErrUserCreationFailed.WrapMessage("duplicate user id")
	}

	roles, err := r.mergeRoles(user.ID, nil, user.Roles)
	if err != nil {
		return err
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	stored := cloneUser(*user)
	stored.Roles = roles
	r.s.users[user.ID] = stored
	r.s.userOrder = append(r.s.userOrder, user.ID)
	r.s.emails[user.Email] = user.ID

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer r.s.lockWrite(r.inTx)()

	current, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if owner, taken := r.s.emails[user.Email]; taken && owner != user.ID {
		return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
	}

	roles, err := r.mergeRoles(user.ID, current.Roles, user.Roles)
	if err != nil {
		return err
	}

	user.UpdatedAt = time.Now()

	stored := cloneUser(*user)
	stored.CreatedAt = current.CreatedAt
	stored.Roles = roles
	stored.OAuthAccounts = current.OAuthAccounts

	delete(r.s.emails, current.Email)
	r.s.emails[user.Email] = user.ID
	r.s.users[user.ID] = stored

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer r.s.lockWrite(r.inTx)()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	delete(r.s.users, id)
	delete(r.s.emails, u.Email)
	r.s.userOrder = slices.DeleteFunc(r.s.userOrder, func(other uuid.UUID) bool { return other == id })
	for key, account := range r.s.oauthAccounts {
		if account.UserID == id {
			delete(r.s.oauthAccounts, key)
		}
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	page := paginate(r.s.userOrder, opts)
	users := make([]*entity.User, 0, len(page))
	for _, id := range page {
		users = append(users, r.load(r.s.users[id]))
	}

	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.users)), nil
}

func (r *userRepository) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer r.s.lockWrite(r.inTx)()

	u, ok := r.s.users[userID]
	if !ok {
		return nil
	}
	u.Roles = slices.DeleteFunc(u.Roles, func(ur entity.UserRole) bool { return ur.RoleID == roleID })
	r.s.users[userID] = u

	return nil
}

// mergeRoles appends the associations of incoming that stored does not hold yet.
// Callers hold the write lock.
func (r *userRepository) mergeRoles(userID uuid.UUID, stored, incoming []entity.UserRole) ([]entity.UserRole, error) {
	merged := slices.Clone(stored)
	for _, ur := range incoming {
		if slices.ContainsFunc(merged, func(existing entity.UserRole) bool { return existing.RoleID == ur.RoleID }) {
			continue
		}
		if _, ok := r.s.roles[ur.RoleID]; !ok {
			return nil, domainerrors.ErrRoleNotFound.WrapMessage("role association references an unknown role")
		}
		if ur.AssignedAt.IsZero() {
			ur.AssignedAt = time.Now()
		}
		merged = append(merged, entity.UserRole{UserID: userID, RoleID: ur.RoleID, AssignedAt: ur.AssignedAt})
	}

	return merged, nil
}

// load returns a detached copy with role names and slugs filled in. Callers hold the lock.
func (r *userRepository) load(u entity.User) *entity.User {
	out := cloneUser(u)
	out.Roles = out.Roles[:0:0]
	for _, ur := range u.Roles {
		role, ok := r.s.roles[ur.RoleID]
		if !ok {
			continue
		}
		ur.RoleName = role.Name
		ur.RoleSlug = role.Slug
		out.Roles = append(out.Roles, ur)
	}

	return &out
}
