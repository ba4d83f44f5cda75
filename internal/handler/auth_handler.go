package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hoa-service/internal/apperr"
	"hoa-service/internal/model"
	"hoa-service/internal/response"
	"hoa-service/internal/service"
	"hoa-service/pkg/logger"
	"hoa-service/prometheus"
)

// AuthHandler serves registration, login and token refresh.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates the handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new principal.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Email      string  `json:"email" validate:"required,email"`
		Password   string  `json:"password" validate:"required"`
		FirstName  string  `json:"first_name" validate:"required"`
		LastName   string  `json:"last_name" validate:"required"`
		Role       string  `json:"role" validate:"required"`
		NationalID *string `json:"national_id,omitempty"`
	}
	if err := bind(c, &req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return response.Error(c, err)
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       model.Role(req.Role),
		NationalID: req.NationalID,
	})
	if err != nil {
		prometheus.RecordAuthError("registration_failed")
		return response.Error(c, err)
	}

	log.Info("User registered", zap.String("email", user.Email))
	return response.OK(c, http.StatusCreated, user)
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password produce the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := bind(c, &req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return response.Error(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.auth.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	if user == nil {
		prometheus.RecordAuthError("invalid_credentials")
		return response.Error(c, apperr.New(apperr.KindInvalidCredentials, "invalid credentials"))
	}

	tokens, err := h.auth.IssueTokenPair(user)
	if err != nil {
		prometheus.RecordAuthError("token_generation_failed")
		return response.Error(c, err)
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in", zap.String("email", user.Email))
	return response.OK(c, http.StatusOK, echo.Map{
		"tokens": tokens,
		"user":   user,
	})
}

// Refresh mints a new access token from a still-valid refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	prometheus.RefreshCounter.Inc()

	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := bind(c, &req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return response.Error(c, err)
	}

	accessToken, err := h.auth.RefreshAccessToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		prometheus.RecordAuthError("refresh_failed")
		return response.Error(c, err)
	}

	return response.OK(c, http.StatusOK, echo.Map{"access_token": accessToken})
}
