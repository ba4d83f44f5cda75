package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hoa-service/internal/response"
	"hoa-service/internal/service"
)

// UserHandler serves profile and account lifecycle routes.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates the handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetProfile returns the authenticated principal's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	profile, err := h.users.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, profile)
}

// UpdateProfile applies a partial update to the authenticated principal.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		FirstName  *string `json:"first_name,omitempty"`
		LastName   *string `json:"last_name,omitempty"`
		NationalID *string `json:"national_id,omitempty"`
	}
	if err := bind(c, &req); err != nil {
		return response.Error(c, err)
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.ID, service.UpdateProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		NationalID: req.NationalID,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, updated)
}

// ChangePassword swaps the credential after verifying the current one.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required"`
	}
	if err := bind(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := h.users.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, echo.Map{"message": "password changed"})
}

// Delete removes an account. The self-or-manager gate runs before this
// handler; deletion is still refused while the target manages associations.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, echo.Map{"message": "user deleted"})
}
