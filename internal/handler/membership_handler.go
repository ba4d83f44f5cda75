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

// MembershipHandler serves the association roster routes.
type MembershipHandler struct {
	access *service.AccessService
}

// NewMembershipHandler creates the handler.
func NewMembershipHandler(access *service.AccessService) *MembershipHandler {
	return &MembershipHandler{access: access}
}

// Add resolves a national id to a registered user and adds them to the
// roster. Manager only, checked in the service.
func (h *MembershipHandler) Add(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordMembershipOperation("add")

	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	associationID, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		NationalID string `json:"national_id" validate:"required"`
	}
	if err := bind(c, &req); err != nil {
		return response.Error(c, err)
	}

	membership, err := h.access.AddMemberByNationalID(c.Request().Context(), associationID, req.NationalID, user.ID)
	if err != nil {
		return response.Error(c, err)
	}

	log.Info("Member added",
		zap.Uint("association_id", associationID),
		zap.Uint("member_id", membership.UserID))
	return response.OK(c, http.StatusCreated, membership)
}

// List returns the roster to the association's manager or members.
func (h *MembershipHandler) List(c echo.Context) error {
	prometheus.RecordMembershipOperation("list")

	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	associationID, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	memberships, err := h.access.ListMembers(c.Request().Context(), associationID, user.ID, user.Role)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, memberships)
}

// Remove deletes one membership. Manager only, checked in the service.
func (h *MembershipHandler) Remove(c echo.Context) error {
	prometheus.RecordMembershipOperation("remove")

	user, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	associationID, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}
	targetUserID, err := pathID(c, "userId")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.access.RemoveMember(c.Request().Context(), associationID, targetUserID, user.ID); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, echo.Map{"message": "member removed"})
}
