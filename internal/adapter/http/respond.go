package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"cedar-ads/internal/core/access"
	"cedar-ads/internal/core/port"
)

// unauthorizedMessage is returned on every authorization denial.
const unauthorizedMessage = "You are not authorized to access this resource."

// deniedMessage is returned when a request cannot be authenticated at all.
const deniedMessage = "You do not have permission to access this resource. " +
	"You may need to login or otherwise authenticate the request."

type deniedResponse struct {
	Denied string `json:"denied"`
	Detail string `json:"detail,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps core errors onto the outcome vocabulary: permission
// denials become a generic forbidden body, validation failures carry the
// specific rule violated, missing rows are 404 and everything else is an
// opaque 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, access.ErrPermissionDenied):
		h.writeJSON(w, http.StatusForbidden, deniedResponse{Denied: unauthorizedMessage})
	case port.IsValidation(err):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, port.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
