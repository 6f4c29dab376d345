package httptransport

import (
	"net/http"
	"strconv"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
)

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req shopapi.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": message})
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.accounts.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.accounts.ResetPassword(r.Context(), req.Token, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email is required"})
		return
	}

	profile, err := h.accounts.Profile(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var profile shopapi.Profile
	if !decodeJSON(w, r, &profile) {
		return
	}
	if profile.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email is required"})
		return
	}

	message, err := h.accounts.UpdateProfile(r.Context(), profile)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req shopapi.SubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.accounts.Subscribe(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": message})
}

func (h *Handler) handleSubscriptionUpdate(w http.ResponseWriter, r *http.Request) {
	var req shopapi.SubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.accounts.UpdateSubscription(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	productID, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	if email == "" || err != nil || productID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email and product_id are required"})
		return
	}

	status, err := h.accounts.SubscriptionStatus(r.Context(), email, productID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) handleSubscriptionHistory(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email is required"})
		return
	}

	records, err := h.accounts.SubscriptionHistory(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		ProductID int64  `json:"product_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.accounts.Unsubscribe(r.Context(), req.Email, req.ProductID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email is required"})
		return
	}

	products, err := h.accounts.Recommendations(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
