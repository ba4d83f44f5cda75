package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hoa-service/internal/apperr"
	"hoa-service/internal/model"
	"hoa-service/internal/repository"
	"hoa-service/internal/response"
	"hoa-service/pkg/jwtutil"
	"hoa-service/pkg/logger"
	"hoa-service/prometheus"
)

// Context keys populated by the auth middleware.
const (
	ContextUser   = "user"
	ContextClaims = "claims"
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware authenticates requests from bearer tokens and exposes the
// role and self gates routes are built from.
type AuthMiddleware struct {
	tokens *jwtutil.JWTUtil
	users  repository.UserRepository
}

// NewAuthMiddleware creates the middleware with its dependencies.
func NewAuthMiddleware(tokens *jwtutil.JWTUtil, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// ExtractBearerToken returns the token from an Authorization header of the
// exact "Bearer <token>" shape, or empty for any deviation.
func ExtractBearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return ""
	}
	return parts[1]
}

// Authenticate verifies the bearer token, loads the principal and attaches
// both to the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		tokenString := ExtractBearerToken(c.Request().Header.Get("Authorization"))
		if tokenString == "" {
			prometheus.RecordAuthError("missing_token")
			return response.Error(c, apperr.New(apperr.KindAuthRequired, "authorization token required"))
		}

		claims, err := m.tokens.ValidateToken(tokenString, jwtutil.KindAccess)
		if err != nil {
			prometheus.RecordAuthError("invalid_token")
			if errors.Is(err, jwtutil.ErrTokenExpired) {
				return response.Error(c, apperr.New(apperr.KindTokenExpired, "token expired"))
			}
			return response.Error(c, apperr.New(apperr.KindTokenInvalid, "invalid token"))
		}

		// The account may have been deleted since the token was issued.
		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				prometheus.RecordAuthError("principal_not_found")
				return response.Error(c, apperr.New(apperr.KindPrincipalNotFound, "account no longer exists"))
			}
			return response.Error(c, apperr.Internal(err))
		}

		attachPrincipal(c, user, claims)
		log.Debug("Request authenticated",
			zap.Uint("user_id", user.ID),
			zap.String("role", string(user.Role)))
		return next(c)
	}
}

// OptionalAuthenticate populates the principal when a valid token is present
// and proceeds unauthenticated otherwise. For routes that vary behavior by
// login state without requiring it.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := ExtractBearerToken(c.Request().Header.Get("Authorization"))
		if tokenString == "" {
			return next(c)
		}
		claims, err := m.tokens.ValidateToken(tokenString, jwtutil.KindAccess)
		if err != nil {
			return next(c)
		}
		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return next(c)
		}
		attachPrincipal(c, user, claims)
		return next(c)
	}
}

// RequireRole builds a gate that admits only the listed roles. Must run
// after Authenticate.
func (m *AuthMiddleware) RequireRole(allowed ...model.Role) echo.MiddlewareFunc {
	allowedNames := make([]string, len(allowed))
	for i, role := range allowed {
		allowedNames[i] = string(role)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUser).(*model.User)
			if !ok {
				return response.Error(c, apperr.New(apperr.KindAuthRequired, "authentication required"))
			}
			for _, role := range allowed {
				if user.Role == role {
					return next(c)
				}
			}
			prometheus.RecordAuthError("role_denied")
			return response.Error(c, apperr.New(apperr.KindForbidden, "insufficient role").
				WithDetails(map[string]interface{}{"allowedRoles": allowedNames}))
		}
	}
}

// IDExtractor resolves the target user id a request acts on.
type IDExtractor func(c echo.Context) (uint, error)

// RequireSelf builds a gate admitting the principal whose id matches the
// extracted target id, or any MANAGER. Must run after Authenticate.
func (m *AuthMiddleware) RequireSelf(extract IDExtractor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUser).(*model.User)
			if !ok {
				return response.Error(c, apperr.New(apperr.KindAuthRequired, "authentication required"))
			}
			targetID, err := extract(c)
			if err != nil {
				return response.Error(c, apperr.New(apperr.KindValidation, "invalid user id"))
			}
			if user.ID != targetID && user.Role != model.RoleManager {
				prometheus.RecordAuthError("self_denied")
				return response.Error(c, apperr.New(apperr.KindForbidden, "access denied"))
			}
			return next(c)
		}
	}
}

func attachPrincipal(c echo.Context, user *model.User, claims *jwtutil.UserClaims) {
	c.Set(ContextUser, user)
	c.Set(ContextClaims, claims)
	c.Set(ContextUserID, user.ID)
	c.Set(ContextEmail, user.Email)
	c.Set(ContextRole, user.Role)
}
