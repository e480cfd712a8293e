package sqlstore

import (
	"context"

	"accounts/internal/errors"
	"accounts/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or updates the users, roles, user_roles and user_oauth_accounts tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	return nil
}
