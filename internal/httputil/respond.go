package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mealboard/mealboard/pkg/domain"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error response with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// BodyError writes the response for a failed request body read or decode.
// Bodies cut off by the size limit map to 413, everything else to 400.
func BodyError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		Error(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	Error(w, http.StatusBadRequest, "invalid request body")
}

// ErrorFrom maps a service error to an HTTP status and writes it. Internal
// errors are masked.
func ErrorFrom(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		Error(w, status, "internal server error")
		return
	}
	Error(w, status, err.Error())
}

// StatusFor returns the HTTP status for a service error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrStoreNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrMenuNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrFoodItemNotFound),
		errors.Is(err, domain.ErrPhotoNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrOwnerCannotLeave):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrMemberAlreadyExists),
		errors.Is(err, domain.ErrMembershipInactive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidRoleType),
		errors.Is(err, domain.ErrOwnerRoleNotAllowed),
		errors.Is(err, domain.ErrMenuItemNotInMenu),
		errors.Is(err, domain.ErrUserNotDeleted),
		errors.Is(err, domain.ErrReinstateUnavailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
