package shopapi

import (
	"fmt"
	"net/http"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/pkg/platform/sentinel"
)

// APIError is a non-2xx response from the shop backend. The backend reports
// everything, including validation failures, as `{"message": ...}` with a
// status code, so Message is safe to surface inline to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("shop api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("shop api: status %d: %s", e.StatusCode, e.Message)
}

// Is maps 404 responses onto sentinel.ErrNotFound so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	return target == sentinel.ErrNotFound && e.StatusCode == http.StatusNotFound
}
