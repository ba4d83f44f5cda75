package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hoa-service/internal/apperr"
	"hoa-service/pkg/logger"
)

// Development controls whether internal error causes are echoed to clients.
// Set once at startup, before the server starts serving.
var Development = false

// Metadata is attached to every response envelope.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// Envelope is the uniform response body.
type Envelope struct {
	Success  bool                   `json:"success"`
	Data     interface{}            `json:"data,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Metadata Metadata               `json:"metadata"`
}

// OK writes a success envelope.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{
		Success:  true,
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	})
}

// Error maps an application error kind to its HTTP status and writes the
// failure envelope. Unexpected errors are logged and surfaced as a generic
// internal error unless the service runs in development mode.
func Error(c echo.Context, err error) error {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal(err)
	}

	status := statusOf(appErr.Kind)
	message := appErr.Message
	if appErr.Kind == apperr.KindInternal {
		logger.FromEcho(c).Error("Internal error", zap.Error(err))
		if !Development {
			message = "internal error"
		} else if appErr.Err != nil {
			message = appErr.Err.Error()
		}
	}

	return c.JSON(status, Envelope{
		Success:  false,
		Error:    message,
		Details:  appErr.Details,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindAlreadyExists, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalidCredentials, apperr.KindTokenExpired, apperr.KindTokenInvalid,
		apperr.KindAuthRequired, apperr.KindPrincipalNotFound:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
