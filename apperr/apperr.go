// Package apperr defines the error kinds the service surfaces to the HTTP
// boundary. Call sites wrap these sentinels with %w so handlers can map any
// failure to a status without inspecting driver errors.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated means the credential is missing, invalid or expired.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the principal is valid but lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrNoCart means the user has never added anything to a cart. It is an
	// outcome, not a storage failure.
	ErrNoCart = errors.New("no cart for user")
	// ErrInvalid is a generic sentinel for invalid input.
	ErrInvalid = errors.New("invalid argument")
	// ErrDependency means a storage or catalog call failed or timed out.
	ErrDependency = errors.New("dependency failure")
)

// HTTPStatus maps an error to the status code the boundary should return.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNoCart), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
