package sqlstore

import (
	"context"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (repo *roleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.RoleModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check role slug")
	}

	return count > 0, nil
}

func (repo *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *roleRepository) FindBySlug(ctx context.Context, slug string) (*entity.Role, error) {
	return repo.findOne(ctx, "slug = ?", slug)
}

func (repo *roleRepository) findOne(ctx context.Context, query string, arg any) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role")
	}

	return toRoleDomain(&roleM), nil
}

func (repo *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	if role.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate role id")
		}
		role.ID = id
	}

	roleM := fromRoleDomain(role)
	if err := repo.db.WithContext(ctx).Create(roleM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRoleAlreadyExists.WrapMessage("role name or slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create role")
	}

	role.CreatedAt = roleM.CreatedAt
	role.UpdatedAt = roleM.UpdatedAt

	return nil
}

func (repo *roleRepository) Update(ctx context.Context, role *entity.Role) error {
	roleM := fromRoleDomain(role)
	roleM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.RoleModel{ID: role.ID}).
		Select("Name", "Slug", "Description", "UpdatedAt").
		Updates(roleM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRoleAlreadyExists.WrapMessage("role name or slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update role")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleNotFound
	}

	role.UpdatedAt = roleM.UpdatedAt

	return nil
}

// Delete removes the role and every assignment of it.
func (repo *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("role_id = ?", id).Delete(&model.UserRoleModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete role assignments")
	}

	result := db.Delete(&model.RoleModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete role")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleNotFound
	}

	return nil
}

func (repo *roleRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Role, error) {
	var roleMs []model.RoleModel
	err := repo.db.WithContext(ctx).
		Order("name ASC").
		Scopes(paginate(opts)).
		Find(&roleMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	roles := make([]*entity.Role, 0, len(roleMs))
	for i := range roleMs {
		roles = append(roles, toRoleDomain(&roleMs[i]))
	}

	return roles, nil
}

func (repo *roleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.RoleModel{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count roles")
	}

	return total, nil
}

func toRoleDomain(data *model.RoleModel) *entity.Role {
	return &entity.Role{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromRoleDomain(data *entity.Role) *model.RoleModel {
	return &model.RoleModel{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
