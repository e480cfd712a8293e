//go:build cgo

package sqlstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite},
		SQLite: &config.SQLiteConfig{
			Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		},
	}

	db, err := Open(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	return db
}

func createRole(t *testing.T, repo repository.RoleRepository, name, slug string) *entity.Role {
	t.Helper()

	role := &entity.Role{Name: name, Slug: slug}
	require.NoError(t, repo.Create(context.Background(), role))

	return role
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	role := createRole(t, NewRoleRepository(db), "Editors", "editors")

	user := &entity.User{
		Email:          "a@x.com",
		Name:           "A",
		HashedPassword: "$argon2id$stub",
		IsActive:       true,
		Roles:          []entity.UserRole{{RoleID: role.ID, AssignedAt: time.Now()}},
	}
	require.NoError(t, users.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.IsActive)
	require.Len(t, found.Roles, 1)
	assert.Equal(t, "editors", found.Roles[0].RoleSlug)
	assert.Equal(t, []string{"editors"}, found.RoleSlugs())

	_, err = users.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	require.NoError(t, users.Create(ctx, &entity.User{Email: "dup@x.com", IsActive: true}))

	err := users.Create(ctx, &entity.User{Email: "dup@x.com", IsActive: true})
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
	assert.True(t, domainerrors.IsConflict(err))
}

func TestUserRepository_UpdateWritesZeroValuesAndNewRoles(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)
	first := createRole(t, roles, "First", "first")
	second := createRole(t, roles, "Second", "second")

	user := &entity.User{Email: "u@x.com", IsActive: true, Roles: []entity.UserRole{{RoleID: first.ID, AssignedAt: time.Now()}}}
	require.NoError(t, users.Create(ctx, user))

	user.IsActive = false
	user.Name = "Renamed"
	user.Roles = append(user.Roles, entity.UserRole{RoleID: second.ID, AssignedAt: time.Now().Add(time.Second)})
	require.NoError(t, users.Update(ctx, user))

	// Saving the same associations again is a no-op.
	require.NoError(t, users.Update(ctx, user))

	found, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
	assert.Equal(t, "Renamed", found.Name)
	assert.Equal(t, []string{"first", "second"}, found.RoleSlugs())

	require.NoError(t, users.RemoveRole(ctx, user.ID, first.ID))
	found, err = users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, found.RoleSlugs())

	err = users.Update(ctx, &entity.User{ID: uuid.New(), Email: "ghost@x.com"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_ListCountDelete(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	for i := range 3 {
		require.NoError(t, users.Create(ctx, &entity.User{Email: fmt.Sprintf("u%d@x.com", i), IsActive: true}))
	}

	total, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	page, err := users.List(ctx, repository.ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	require.NoError(t, users.Delete(ctx, page[0].ID))
	assert.ErrorIs(t, users.Delete(ctx, page[0].ID), repository.ErrUserNotFound)

	total, err = users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestRoleRepository_SlugUniqueness(t *testing.T) {
	ctx := context.Background()
	roles := NewRoleRepository(newTestDB(t))
	role := createRole(t, roles, "My Team", "my-team")

	exists, err := roles.SlugExists(ctx, "my-team")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = roles.SlugExists(ctx, "my-team-1")
	require.NoError(t, err)
	assert.False(t, exists)

	err = roles.Create(ctx, &entity.Role{Name: "Other", Slug: "my-team"})
	assert.ErrorIs(t, err, domainerrors.ErrRoleAlreadyExists)

	found, err := roles.FindBySlug(ctx, "my-team")
	require.NoError(t, err)
	assert.Equal(t, role.ID, found.ID)

	role.Description = "updated"
	require.NoError(t, roles.Update(ctx, role))

	require.NoError(t, roles.Delete(ctx, role.ID))
	_, err = roles.FindByID(ctx, role.ID)
	assert.ErrorIs(t, err, repository.ErrRoleNotFound)
}

func TestOAuthAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := &entity.User{Email: "g@x.com", IsActive: true}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))

	accounts := NewOAuthAccountRepository(db)
	link := &entity.OAuthAccount{UserID: user.ID, Provider: entity.ProviderGoogle, AccountID: "sub-1", AccountEmail: "g@x.com"}
	require.NoError(t, accounts.Create(ctx, link))

	found, err := accounts.FindByProviderAccount(ctx, entity.ProviderGoogle, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	err = accounts.Create(ctx, &entity.OAuthAccount{UserID: user.ID, Provider: entity.ProviderGoogle, AccountID: "sub-1"})
	assert.ErrorIs(t, err, domainerrors.ErrOAuthAccountLinked)

	_, err = accounts.FindByProviderAccount(ctx, entity.ProviderGoogle, "missing")
	assert.ErrorIs(t, err, repository.ErrOAuthAccountNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	errBoom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.RoleRepo().Create(ctx, &entity.Role{Name: "Temp", Slug: "temp"}); err != nil {
			return err
		}

		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	exists, err := NewRoleRepository(db).SlugExists(ctx, "temp")
	require.NoError(t, err)
	assert.False(t, exists)

	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.RoleRepo().Create(ctx, &entity.Role{Name: "Kept", Slug: "kept"})
	})
	require.NoError(t, err)

	exists, err = NewRepositoryFactory(db).RoleRepo().SlugExists(ctx, "kept")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTransactionManager_BeginFailure(t *testing.T) {
	db := newTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTransactionManager(db).Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})

	assert.ErrorIs(t, err, domainerrors.ErrTransactionFailed)
	assert.False(t, called)
}
