package handler

import (
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// UserResponse is the public projection of a user. The password hash is never exposed.
type UserResponse struct {
	ID            uuid.UUID              `json:"id"`
	Email         string                 `json:"email"`
	Name          string                 `json:"name"`
	IsActive      bool                   `json:"is_active"`
	IsSuperuser   bool                   `json:"is_superuser"`
	IsVerified    bool                   `json:"is_verified"`
	HasPassword   bool                   `json:"has_password"`
	Roles         []UserRoleResponse     `json:"roles"`
	OAuthAccounts []OAuthAccountResponse `json:"oauth_accounts,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type UserRoleResponse struct {
	RoleID     uuid.UUID `json:"role_id"`
	RoleName   string    `json:"role_name"`
	RoleSlug   string    `json:"role_slug"`
	AssignedAt time.Time `json:"assigned_at"`
}

type OAuthAccountResponse struct {
	Provider     entity.ProviderType `json:"provider"`
	AccountEmail string              `json:"account_email"`
	LinkedAt     time.Time           `json:"linked_at"`
}

type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TokenResponse is returned by every sign-in endpoint.
type TokenResponse struct {
	AccessToken      string        `json:"access_token"`
	RefreshToken     string        `json:"refresh_token"`
	TokenType        string        `json:"token_type"`
	AccessExpiresAt  time.Time     `json:"access_expires_at"`
	RefreshExpiresAt time.Time     `json:"refresh_expires_at"`
	User             *UserResponse `json:"user"`
}

type AccessTokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	roles := make([]UserRoleResponse, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, UserRoleResponse{
			RoleID:     r.RoleID,
			RoleName:   r.RoleName,
			RoleSlug:   r.RoleSlug,
			AssignedAt: r.AssignedAt,
		})
	}

	var accounts []OAuthAccountResponse
	for _, a := range user.OAuthAccounts {
		accounts = append(accounts, OAuthAccountResponse{
			Provider:     a.Provider,
			AccountEmail: a.AccountEmail,
			LinkedAt:     a.CreatedAt,
		})
	}

	return &UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		IsActive:      user.IsActive,
		IsSuperuser:   user.IsSuperuser,
		IsVerified:    user.IsVerified,
		HasPassword:   user.HasPassword(),
		Roles:         roles,
		OAuthAccounts: accounts,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	return out
}

func toRoleResponse(role *entity.Role) *RoleResponse {
	return &RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Slug:        role.Slug,
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

func toRoleResponses(roles []*entity.Role) []*RoleResponse {
	out := make([]*RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}

	return out
}
