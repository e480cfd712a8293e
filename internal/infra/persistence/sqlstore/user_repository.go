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
	"gorm.io/gorm/clause"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// withRoles preloads role associations in assignment order together with the role itself.
func withRoles(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Roles", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("assigned_at ASC")
		}).
		Preload("Roles.Role")
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	err := withRoles(repo.db.WithContext(ctx)).Where(query, arg).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user together with its role associations.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate user id")
		}
		user.ID = id
	}

	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrRoleNotFound.WrapMessage("role association references an unknown role")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update saves the user's columns and inserts role associations not stored yet.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	userM.UpdatedAt = time.Now()
	roles := userM.Roles
	userM.Roles = nil

	// Select forces zero values (is_active=false) to be written.
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{ID: user.ID}).
		Select("Email", "Name", "HashedPassword", "IsActive", "IsSuperuser", "IsVerified", "UpdatedAt").
		Updates(userM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	if len(roles) > 0 {
		err := repo.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).
			Create(&roles).Error
		if err != nil {
			if isForeignKeyConstraintViolation(err) {
				return domainerrors.ErrRoleNotFound.WrapMessage("role association references an unknown role")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to save user roles")
		}
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Delete removes the user together with its role associations and linked accounts.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("user_id = ?", id).Delete(&model.UserRoleModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user roles")
	}
	if err := db.Where("user_id = ?", id).Delete(&model.OAuthAccountModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete oauth accounts")
	}

	result := db.Delete(&model.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// List returns one page of users ordered by creation time.
func (repo *userRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.User, error) {
	var userMs []model.UserModel
	err := withRoles(repo.db.WithContext(ctx)).
		Order("created_at ASC").Order("id ASC").
		Scopes(paginate(opts)).
		Find(&userMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for i := range userMs {
		users = append(users, toUserDomain(&userMs[i]))
	}

	return users, nil
}

// Count returns the total number of users.
func (repo *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return total, nil
}

// RemoveRole deletes a single role association. Removing an absent association is not an error.
func (repo *userRepository) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserRoleModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove user role")
	}

	return nil
}

func paginate(opts repository.ListOptions) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if opts.Limit > 0 {
			db = db.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			db = db.Offset(opts.Offset)
		}

		return db
	}
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	roles := make([]entity.UserRole, 0, len(data.Roles))
	for _, r := range data.Roles {
		ur := entity.UserRole{
			UserID:     r.UserID,
			RoleID:     r.RoleID,
			AssignedAt: r.AssignedAt,
		}
		if r.Role != nil {
			ur.RoleName = r.Role.Name
			ur.RoleSlug = r.Role.Slug
		}
		roles = append(roles, ur)
	}

	return &entity.User{
		ID:             data.ID,
		Email:          data.Email,
		Name:           data.Name,
		HashedPassword: data.HashedPassword,
		IsActive:       data.IsActive,
		IsSuperuser:    data.IsSuperuser,
		IsVerified:     data.IsVerified,
		Roles:          roles,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	roles := make([]model.UserRoleModel, 0, len(data.Roles))
	for _, r := range data.Roles {
		assignedAt := r.AssignedAt
		if assignedAt.IsZero() {
			assignedAt = time.Now()
		}
		roles = append(roles, model.UserRoleModel{
			UserID:     data.ID,
			RoleID:     r.RoleID,
			AssignedAt: assignedAt,
		})
	}

	return &model.UserModel{
		ID:             data.ID,
		Email:          data.Email,
		Name:           data.Name,
		HashedPassword: data.HashedPassword,
		IsActive:       data.IsActive,
		IsSuperuser:    data.IsSuperuser,
		IsVerified:     data.IsVerified,
		Roles:          roles,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
