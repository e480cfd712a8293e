package handler

import (
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PageQuery carries the paging parameters of list endpoints.
type PageQuery struct {
	Limit  int `query:"limit" validate:"min=0"`
	Offset int `query:"offset" validate:"min=0"`
}

// bindAndValidate binds the request into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("malformed request body"))
	}

	return c.Validate(req)
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.Validation(name + " must be a UUID")
	}

	return id, nil
}

func pageQuery(c echo.Context) (PageQuery, error) {
	var q PageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return PageQuery{}, err
	}
	if q.Limit == 0 {
		q.Limit = 100
	}

	return q, nil
}
