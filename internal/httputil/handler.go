package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/redmonkez12/friend-app/internal/apperr"
	"github.com/redmonkez12/friend-app/internal/logging"
)

const msgInternalServer = "Internal Server Error"

// AppHandler is a handler that reports failure by returning an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to http.HandlerFunc. Returned errors are
// logged and written as {"error", "code"} with the status of their kind.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			RespondAppError(w, r, err)
		}
	}
}

// RespondAppError writes err using the status mapped from its kind.
func RespondAppError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())

	kind := apperr.KindOf(err)
	status := StatusForKind(kind)

	message := msgInternalServer
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "request failed",
		"kind", kind.String(),
		"status", status,
		"error", err.Error(),
	)

	RespondErrorWithCode(w, message, kind.String(), status)
}

// StatusForKind maps an error kind to its HTTP status.
func StatusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
