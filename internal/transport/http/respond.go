package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/pkg/platform/sentinel"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError centralizes error translation to HTTP responses. Backend
// validation messages pass through inline; infrastructure detail does not.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var apiErr *shopapi.APIError
	switch {
	case errors.As(err, &apiErr):
		message := apiErr.Message
		if message == "" {
			message = http.StatusText(apiErr.StatusCode)
		}
		writeJSON(w, apiErr.StatusCode, map[string]string{"message": message})
	case errors.Is(err, sentinel.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	case errors.Is(err, sentinel.ErrUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{"message": "shop backend unavailable"})
	case errors.Is(err, sentinel.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"message": "conflicting session state"})
	default:
		logger.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return false
	}
	return true
}
