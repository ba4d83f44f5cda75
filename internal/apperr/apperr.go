package apperr

import "fmt"

// Kind discriminates application errors so the HTTP boundary can map them to
// status codes without inspecting error messages.
type Kind string

const (
	KindAlreadyExists      Kind = "already_exists"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindTokenExpired       Kind = "token_expired"
	KindTokenInvalid       Kind = "token_invalid"
	KindAuthRequired       Kind = "auth_required"
	KindPrincipalNotFound  Kind = "principal_not_found"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindValidation         Kind = "validation"
	KindInternal           Kind = "internal"
)

// Error is the application error type carried from services up to handlers.
type Error struct {
	Kind    Kind
	Message string
	// Details holds structured diagnostics, e.g. the list of unmet password
	// rules or the allowed roles on a role-gate failure.
	Details map[string]interface{}
	// Err is the wrapped cause, logged server-side but never sent to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an application error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an application error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new application error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetails returns the error with structured diagnostics attached.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// Internal wraps an unexpected failure (store, crypto) at the service boundary.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the kind of an error, defaulting to KindInternal for
// anything that is not an *Error.
func KindOf(err error) Kind {
	if appErr, ok := err.(*Error); ok {
		return appErr.Kind
	}
	return KindInternal
}

// As returns the error as an *Error when it is one.
func As(err error) (*Error, bool) {
	appErr, ok := err.(*Error)
	return appErr, ok
}
