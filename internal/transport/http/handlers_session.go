package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session/bridge"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID int64       `json:"user_id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Items  []cart.Item `json:"items"`
}

// handleSessionCreate starts a fresh anonymous browsing session and returns
// the token that addresses it.
func (h *Handler) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	runtime := h.sessions.Create()

	token, err := h.tokens.Generate(runtime.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"session_id":    runtime.ID.String(),
		"session_token": token,
	})
}

// handleLogin authenticates the session in one blocking request, then pulls
// the persisted cart and overwrites the local one with it. Anything added
// while anonymous is discarded, not merged.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	runtime := runtimeFrom(r.Context())

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := runtime.Session.Login(user); err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := loginResponse{UserID: user.ID, Name: user.Name, Email: user.Email, Items: []cart.Item{}}

	// A failed pull leaves the local cart untouched and is never surfaced;
	// the client picks the cart up from GET /session/cart.
	if items, err := h.sync.HandleLogin(r.Context(), runtime.Session.Shopper(), runtime.Cart); err == nil {
		resp.Items = items
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout resets the session to anonymous and discards the in-memory
// cart.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	runtime := runtimeFrom(r.Context())

	runtime.Session.Logout()
	runtime.Cart.Clear()
	runtime.CloseCart()

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type captureRequest struct {
	From string          `json:"from"`
	Data json.RawMessage `json:"data,omitempty"`
}

// handleIntentCapture saves the navigation context immediately before the
// client redirects to the authentication entry point.
func (h *Handler) handleIntentCapture(w http.ResponseWriter, r *http.Request) {
	runtime := runtimeFrom(r.Context())

	var req captureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.From == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "from is required"})
		return
	}

	intent := bridge.Intent{From: req.From, Data: req.Data}
	if err := h.bridge.Capture(r.Context(), runtime.ID, intent); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "captured"})
}

// handleIntentConsume returns the captured intent at most once; a null intent
// means the client should default to the storefront home.
func (h *Handler) handleIntentConsume(w http.ResponseWriter, r *http.Request) {
	runtime := runtimeFrom(r.Context())

	intent, err := h.bridge.Consume(r.Context(), runtime.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"intent": intent})
}
