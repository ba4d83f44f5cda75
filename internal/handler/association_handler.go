package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hoa-service/internal/response"
	"hoa-service/internal/service"
	"hoa-service/pkg/logger"
	"hoa-service/prometheus"
)

// AssociationHandler serves the house-association routes.
type AssociationHandler struct {
	associations *service.AssociationService
}

// NewAssociationHandler creates the handler.
func NewAssociationHandler(associations *service.AssociationService) *AssociationHandler {
	return &AssociationHandler{associations: associations}
}

// Create registers a new association owned by the authenticated manager.
func (h *AssociationHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordAssociationOperation("create")

	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Name            string `json:"name" validate:"required"`
		Address         string `json:"address"`
		RegistrationNum string `json:"registration_num" validate:"required"`
	}
	if err := bind(c, &req); err != nil {
		return response.Error(c, err)
	}

	association, err := h.associations.Create(c.Request().Context(), user.ID, service.CreateAssociationInput{
		Name:            req.Name,
		Address:         req.Address,
		RegistrationNum: req.RegistrationNum,
	})
	if err != nil {
		return response.Error(c, err)
	}

	log.Info("Association created", zap.Uint("id", association.ID))
	return response.OK(c, http.StatusCreated, association)
}

// List returns every association the principal manages or belongs to.
func (h *AssociationHandler) List(c echo.Context) error {
	prometheus.RecordAssociationOperation("list")

	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	associations, err := h.associations.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, associations)
}

// Get returns one association to its manager or members.
func (h *AssociationHandler) Get(c echo.Context) error {
	prometheus.RecordAssociationOperation("access")

	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	association, err := h.associations.Get(c.Request().Context(), id, user.ID, user.Role)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, association)
}

// Update applies a partial update. Manager only, checked in the service.
func (h *AssociationHandler) Update(c echo.Context) error {
	prometheus.RecordAssociationOperation("update")

	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Name            *string `json:"name,omitempty"`
		Address         *string `json:"address,omitempty"`
		RegistrationNum *string `json:"registration_num,omitempty"`
	}
	if err := bind(c, &req); err != nil {
		return response.Error(c, err)
	}

	association, err := h.associations.Update(c.Request().Context(), id, user.ID, service.UpdateAssociationInput{
		Name:            req.Name,
		Address:         req.Address,
		RegistrationNum: req.RegistrationNum,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, association)
}

// Delete removes an association and its roster. Manager only.
func (h *AssociationHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordAssociationOperation("delete")

	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.associations.Delete(c.Request().Context(), id, user.ID); err != nil {
		return response.Error(c, err)
	}

	log.Info("Association deleted", zap.Uint("id", id))
	return response.OK(c, http.StatusOK, echo.Map{"message": "association deleted"})
}
