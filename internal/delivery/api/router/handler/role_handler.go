package handler

import (
	"net/http"

	"accounts/internal/delivery/api/response"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// RoleHandler serves role administration and role assignment.
type RoleHandler struct {
	roles usecase.RoleUsecase
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roles usecase.RoleUsecase) *RoleHandler {
	return &RoleHandler{roles: roles}
}

func (h *RoleHandler) List(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}

	roles, total, err := h.roles.ListRoles(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		return err
	}

	return response.Page(c, toRoleResponses(roles), total, q.Limit, q.Offset)
}

func (h *RoleHandler) Create(c echo.Context) error {
	var req CreateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.roles.CreateRole(c.Request().Context(), &usecase.CreateRoleInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toRoleResponse(role))
}

func (h *RoleHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	role, err := h.roles.GetRole(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toRoleResponse(role))
}

// GetBySlug looks a role up by its slug.
func (h *RoleHandler) GetBySlug(c echo.Context) error {
	role, err := h.roles.GetRoleBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toRoleResponse(role))
}

func (h *RoleHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.roles.UpdateRole(c.Request().Context(), id, &usecase.UpdateRoleInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toRoleResponse(role))
}

func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.roles.DeleteRole(c.Request().Context(), id); err != nil {
		return err
	}

	return response.NoContent(c)
}

// Assign grants the role in the path to the user in the path.
func (h *RoleHandler) Assign(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	roleID, err := pathUUID(c, "roleId")
	if err != nil {
		return err
	}

	user, err := h.roles.AssignRole(c.Request().Context(), userID, roleID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

func (h *RoleHandler) Revoke(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	roleID, err := pathUUID(c, "roleId")
	if err != nil {
		return err
	}

	if err := h.roles.RevokeRole(c.Request().Context(), userID, roleID); err != nil {
		return err
	}

	return response.NoContent(c)
}
