package httptransport

import (
	"context"
	"net/http"
	"strings"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session"
)

type sessionKey struct{}

// resolveSession attaches the caller's live session to the request context
// when a valid bearer token is presented. Requests without one pass through
// unauthenticated; requireSession is the gate.
func (h *Handler) resolveSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, err := h.tokens.SessionID(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		runtime, err := h.sessions.Get(sessionID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, runtime)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession rejects requests that did not resolve to a live session.
func requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if runtimeFrom(r.Context()) == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "session required"})
			return
		}
		next(w, r)
	}
}

func runtimeFrom(ctx context.Context) *session.Runtime {
	runtime, _ := ctx.Value(sessionKey{}).(*session.Runtime)
	return runtime
}
