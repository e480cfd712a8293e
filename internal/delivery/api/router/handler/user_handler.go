package handler

import (
	"net/http"

	"accounts/internal/delivery/api/response"
	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Name     string     `json:"name" validate:"max=255"`
	Password string     `json:"password" validate:"required"`
	RoleID   *uuid.UUID `json:"role_id"`
}

type UpdateUserRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=255"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	IsActive    *bool      `json:"is_active"`
	IsSuperuser *bool      `json:"is_superuser"`
	IsVerified  *bool      `json:"is_verified"`
	RoleID      *uuid.UUID `json:"role_id"`
}

// UserHandler serves the signed-in user's own account and the user administration endpoints.
type UserHandler struct {
	accounts usecase.AccountUsecase
	sessions usecase.SessionUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts usecase.AccountUsecase, sessions usecase.SessionUsecase) *UserHandler {
	return &UserHandler{accounts: accounts, sessions: sessions}
}

// Me returns the signed-in user.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	user, err := h.sessions.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// UpdatePassword changes the signed-in user's password.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	var req UpdatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.accounts.UpdatePassword(c.Request().Context(), &usecase.UpdatePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, MessageResponse{Message: "password updated"})
}

func (h *UserHandler) List(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}

	users, total, err := h.accounts.ListUsers(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		return err
	}

	return response.Page(c, toUserResponses(users), total, q.Limit, q.Offset)
}

func (h *UserHandler) Count(c echo.Context) error {
	total, err := h.accounts.CountUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, CountResponse{Count: total})
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.accounts.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// Create registers a user on behalf of an administrator.
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.UpdateUser(c.Request().Context(), id, &usecase.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
		IsVerified:  req.IsVerified,
		RoleID:      req.RoleID,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.accounts.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return response.NoContent(c)
}
