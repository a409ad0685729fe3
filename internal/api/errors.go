package api

import (
	"errors"
	"net/http"

	"github.com/proevals/proevals-api/internal/api/shared"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/service/auth"
	"github.com/proevals/proevals-api/internal/service/content"
	"github.com/proevals/proevals-api/internal/service/drill"
	"github.com/proevals/proevals-api/internal/service/leaderboard"
	"github.com/proevals/proevals-api/internal/service/user"
	"github.com/proevals/proevals-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, user.ErrWrongPassword):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, drill.ErrDrillNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Rate limiting: the free-tier quota cycle
	case errors.Is(err, drill.ErrQuotaExhausted):
		return http.StatusTooManyRequests

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, drill.ErrInvalidAttempt),
		errors.Is(err, leaderboard.ErrInvalidPeriod),
		errors.Is(err, leaderboard.ErrInvalidCategory),
		errors.Is(err, content.ErrImportRejected):
		return http.StatusBadRequest

	// Special cases: the user is caught up, nothing to hand out
	case errors.Is(err, drill.ErrNoDrillAvailable):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, user.ErrWrongPassword):
		return "Current password is incorrect"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, drill.ErrDrillNotFound),
		errors.Is(err, store.ErrDrillNotFound):
		return "Drill not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, drill.ErrQuotaExhausted):
		return "Drill quota exhausted, try again after the cooldown"

	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Password is too short"

	case errors.Is(err, domain.ErrPasswordTooLong):
		return "Password is too long"

	case errors.Is(err, drill.ErrInvalidAttempt):
		return "Invalid attempt submission"

	case errors.Is(err, leaderboard.ErrInvalidPeriod):
		return "Unknown leaderboard period"

	case errors.Is(err, leaderboard.ErrInvalidCategory):
		return "Unknown skill category"

	case errors.Is(err, content.ErrImportRejected):
		return "Drill import rejected"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and sends a sanitized response,
// logging the underlying error. An empty userMessage uses the safe message
// derived from the error type.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
