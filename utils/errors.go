package utils

import (
	"errors"
	"net/http"
)

// Error taxonomy shared by services and controllers. Services wrap these
// with fmt.Errorf("%w: ...") and controllers map them to HTTP codes via
// RespondAppError. Anything outside the taxonomy is treated as internal.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

// StatusFromError maps a taxonomy error to its HTTP status code.
// Validation and conflict failures both surface as 400.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
