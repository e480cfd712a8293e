package model

import (
	"time"

	"github.com/google/uuid"
)

// OAuthAccountModel mirrors the 'user_oauth_accounts' table.
type OAuthAccountModel struct {
	ID           uuid.UUID `gorm:"primaryKey;size:36"`
	UserID       uuid.UUID `gorm:"size:36;not null;index"`
	Provider     string    `gorm:"size:32;not null;uniqueIndex:idx_oauth_provider_account"`
	AccountID    string    `gorm:"size:255;not null;uniqueIndex:idx_oauth_provider_account"`
	AccountEmail string    `gorm:"size:255"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OAuthAccountModel) TableName() string {
	return "user_oauth_accounts"
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&RoleModel{},
		&UserRoleModel{},
		&OAuthAccountModel{},
	}
}
