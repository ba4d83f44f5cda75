package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"hoa-service/internal/apperr"
	"hoa-service/internal/middleware"
	"hoa-service/internal/model"
)

// bind parses and validates a request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.KindValidation, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return apperr.Wrap(apperr.KindValidation, "request validation failed", err)
	}
	return nil
}

// currentUser returns the principal attached by the auth middleware.
func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(middleware.ContextUser).(*model.User)
	if !ok {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}
	return user, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.Newf(apperr.KindValidation, "invalid %s", name)
	}
	return uint(id), nil
}

// PathUserID extracts the ":id" path parameter as a user id, used by the
// self-or-manager gate on the user routes.
func PathUserID(c echo.Context) (uint, error) {
	return pathID(c, "id")
}
