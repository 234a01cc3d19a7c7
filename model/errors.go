package model

import (
	"errors"
	"net/http"
)

// ErrorWithStatus is a client-facing error carrying the HTTP status the
// request layer should respond with. Anything that is not an ErrorWithStatus
// is treated as a dependency failure (500).
type ErrorWithStatus struct {
	Status  int
	Message string
}

func (e *ErrorWithStatus) Error() string {
	return e.Message
}

var (
	ErrTweetNotFound  = &ErrorWithStatus{Status: http.StatusNotFound, Message: "tweet not found"}
	ErrUserNotFound   = &ErrorWithStatus{Status: http.StatusNotFound, Message: "user not found"}
	ErrLoginRequired  = &ErrorWithStatus{Status: http.StatusUnauthorized, Message: "access token is required"}
	ErrInvalidToken   = &ErrorWithStatus{Status: http.StatusUnauthorized, Message: "invalid or expired token"}
	ErrTweetNotPublic = &ErrorWithStatus{Status: http.StatusForbidden, Message: "tweet is not public"}
)

// NewValidationError builds a 422 for malformed or out-of-range input.
func NewValidationError(message string) *ErrorWithStatus {
	return &ErrorWithStatus{Status: http.StatusUnprocessableEntity, Message: message}
}

// HTTPStatus extracts the client-facing status from err, unwrapping any
// annotation layers. Unknown errors map to 500.
func HTTPStatus(err error) int {
	var es *ErrorWithStatus
	if errors.As(err, &es) {
		return es.Status
	}
	return http.StatusInternalServerError
}
