package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
)

// Client-facing messages.
const (
	MsgInvalidRequestFormat = "Invalid request format"
	MsgUnexpected           = "An unexpected error occurred"
	MsgUserNotFound         = "User not found"
	MsgProductNotFound      = "Product not found"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat):
		return MsgInvalidRequestFormat

	case errors.Is(err, store.ErrUserNotFound):
		return MsgUserNotFound

	case errors.Is(err, store.ErrProductNotFound):
		return MsgProductNotFound

	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the error response for err. For 500s the generic
// message is replaced with serverMessage when one is given, so clients see
// which operation failed without seeing why.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, serverMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && serverMessage != "" {
		message = serverMessage
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
