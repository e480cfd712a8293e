package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are generated by the application so the
// same schema works on postgres, mysql and sqlite.
type UserModel struct {
	ID             uuid.UUID `gorm:"primaryKey;size:36"`
	Email          string    `gorm:"size:255;not null;uniqueIndex"`
	Name           string    `gorm:"size:100"`
	HashedPassword string    `gorm:"size:255"`
	IsActive       bool      `gorm:"not null"`
	IsSuperuser    bool      `gorm:"not null"`
	IsVerified     bool      `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Roles         []UserRoleModel     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	OAuthAccounts []OAuthAccountModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserRoleModel mirrors the 'user_roles' join table. The (user_id, role_id) pair is the
// primary key, so a role is held at most once per user.
type UserRoleModel struct {
	UserID     uuid.UUID `gorm:"primaryKey;size:36"`
	RoleID     uuid.UUID `gorm:"primaryKey;size:36;index"`
	AssignedAt time.Time `gorm:"not null"`

	Role *RoleModel `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserRoleModel) TableName() string {
	return "user_roles"
}
