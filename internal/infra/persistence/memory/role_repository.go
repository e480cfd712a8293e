package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
)

type roleRepository struct {
	s    *Store
	inTx bool
}

func (r *roleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.roleSlugs[slug]

	return ok, nil
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	role, ok := r.s.roles[id]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}

	return &role, nil
}

func (r *roleRepository) FindBySlug(ctx context.Context, slug string) (*entity.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.roleSlugs[slug]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	role := r.s.roles[id]

	return &role, nil
}

func (r *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer r.s.lockWrite(r.inTx)()

	if r.taken(role, uuid.Nil) {
		return domainerrors.ErrRoleAlreadyExists.WrapMessage("role name or slug already exists")
	}
	if role.ID == uuid.Nil {
		role.ID = newID()
	}

	now := time.Now()
	role.CreatedAt, role.UpdatedAt = now, now

	r.s.roles[role.ID] = *role
	r.s.roleNames[role.Name] = role.ID
	r.s.roleSlugs[role.Slug] = role.ID

	return nil
}

func (r *roleRepository) Update(ctx context.Context, role *entity.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer r.s.lockWrite(r.inTx)()

	current, ok := r.s.roles[role.ID]
	if !ok {
		return repository.ErrRoleNotFound
	}
	if r.taken(role, role.ID) {
		return domainerrors.ErrRoleAlreadyExists.WrapMessage("role name or slug already exists")
	}

	role.CreatedAt = current.CreatedAt
	role.UpdatedAt = time.Now()

	delete(r.s.roleNames, current.Name)
	delete(r.s.roleSlugs, current.Slug)
	r.s.roles[role.ID] = *role
	r.s.roleNames[role.Name] = role.ID
	r.s.roleSlugs[role.Slug] = role.ID

	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer r.s.lockWrite(r.inTx)()

	role, ok := r.s.roles[id]
	if !ok {
		return repository.ErrRoleNotFound
	}

	delete(r.s.roles, id)
	delete(r.s.roleNames, role.Name)
	delete(r.s.roleSlugs, role.Slug)

	for userID, u := range r.s.users {
		if u.HasRole(id) {
			u.Roles = slices.DeleteFunc(u.Roles, func(ur entity.UserRole) bool { return ur.RoleID == id })
			r.s.users[userID] = u
		}
	}

	return nil
}

func (r *roleRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*entity.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		all = append(all, &role)
	}
	slices.SortFunc(all, func(a, b *entity.Role) int { return cmp.Compare(a.Name, b.Name) })

	return paginate(all, opts), nil
}

func (r *roleRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.roles)), nil
}

// taken reports whether another role already uses role's name or slug. Callers hold the lock.
func (r *roleRepository) taken(role *entity.Role, self uuid.UUID) bool {
	if id, ok := r.s.roleNames[role.Name]; ok && id != self {
		return true
	}
	if id, ok := r.s.roleSlugs[role.Slug]; ok && id != self {
		return true
	}

	return false
}
