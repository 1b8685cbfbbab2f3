package web

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/aretw0/notebook/pkg/core"
)

// statusOf maps the domain error taxonomy onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrReadOnly):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// handleError renders err as an error page or a JSON message.
// Unexpected failures are logged and reported with a generic message only.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)

	title := http.StatusText(status)
	message := core.UserMessage(err, genericFailure)
	if status == http.StatusForbidden {
		message = "This notebook is read-only."
	}
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		title = genericFailure
		message = "Something went wrong while handling your notes."
	}

	if wantsJSON(r) {
		if status == http.StatusInternalServerError {
			message = genericFailure
		}
		writeJSON(w, status, messageResponse{Message: message})
		return
	}

	if renderErr := h.views.render(w, status, "error", errorPageVModel{Title: title, Message: message}); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "could not render error page", "error", renderErr)
		http.Error(w, genericFailure, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(v)
}
