package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/billing/internal/shared"
)

var (
	errEmptyBody     = shared.NewError(shared.ErrValidation, "request body is required")
	errMalformedBody = shared.NewError(shared.ErrValidation, "request body must be valid JSON")
	errInvalidID     = shared.NewError(shared.ErrValidation, "invalid id")
)

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, shared.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps domain errors to {"error": ...} responses. Unknown errors
// become a generic 500 so storage details never reach the client.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := ErrorBody{Error: shared.UserSafeMessage(err)}
	var de *shared.Error
	switch {
	case status == http.StatusInternalServerError:
		body.Error = "Internal server error"
	case errors.As(err, &de):
		body.Details = de.Fields
	}
	JSON(w, status, body)
}

// Fail logs server-side failures with the request id and responds with the
// mapped error body. Client errors are not logged.
func Fail(logger *slog.Logger, w http.ResponseWriter, r *http.Request, op string, err error) {
	if StatusFor(err) >= http.StatusInternalServerError && logger != nil {
		logger.Error(op+" failed",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
	RespondError(w, err)
}
