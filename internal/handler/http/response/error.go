package response

import (
	"errors"
	"net/http"

	"github.com/storeanalytics/sales-dashboard-go/internal/domain/auth"
	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// Sales domain errors
	case errors.Is(err, sales.ErrStoreNotInClaims):
		Forbidden(w, "Token is not bound to a store")
	case errors.Is(err, sales.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, sales.ErrUnknownReport):
		NotFound(w, "Report not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
