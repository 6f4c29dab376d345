// Package httptransport is the session-facing HTTP surface of the storefront
// gateway. It is a thin layer: handlers decode, delegate to the domain
// services, and encode. Business rules live in the internal domain packages.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/account"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/catalog"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session/bridge"
)

// Handler wires the gateway endpoints to the domain services.
type Handler struct {
	sessions *session.Registry
	tokens   *session.TokenService
	sync     *cart.SyncService
	enricher *cart.Enricher
	catalog  *catalog.Service
	accounts *account.Service
	bridge   *bridge.Bridge
	logger   *slog.Logger
}

// NewHandler constructs the gateway handler.
func NewHandler(
	sessions *session.Registry,
	tokens *session.TokenService,
	syncService *cart.SyncService,
	enricher *cart.Enricher,
	catalogService *catalog.Service,
	accountService *account.Service,
	intentBridge *bridge.Bridge,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sessions: sessions,
		tokens:   tokens,
		sync:     syncService,
		enricher: enricher,
		catalog:  catalogService,
		accounts: accountService,
		bridge:   intentBridge,
		logger:   logger,
	}
}

// NewRouter mounts all gateway endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics)
	r.Use(h.resolveSession)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/session", func(r chi.Router) {
		r.Post("/", h.handleSessionCreate)
		r.Post("/login", requireSession(h.handleLogin))
		r.Post("/logout", requireSession(h.handleLogout))

		r.Get("/cart", requireSession(h.handleCartView))
		r.Post("/cart/close", requireSession(h.handleCartClose))
		r.Post("/cart/items", requireSession(h.handleCartAdd))
		r.Patch("/cart/items/{productID}", requireSession(h.handleCartUpdate))
		r.Delete("/cart/items/{productID}", requireSession(h.handleCartRemove))

		r.Post("/redirect-intent", requireSession(h.handleIntentCapture))
		r.Post("/redirect-intent/consume", requireSession(h.handleIntentConsume))
	})

	r.Route("/storefront", func(r chi.Router) {
		r.Get("/best-sellers", h.handleBestSellers)
		r.Get("/best-sellers/all", h.handleAllBestSellers)
		r.Get("/collections/{label}", h.handleCollection)
		r.Get("/search", h.handleSearch)
		r.Get("/products/{productID}", h.handleProduct)
	})

	r.Route("/account", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/forgot-password", h.handleForgotPassword)
		r.Post("/reset-password", h.handleResetPassword)
		r.Get("/profile", h.handleProfileGet)
		r.Put("/profile", h.handleProfileUpdate)
		r.Post("/subscriptions", h.handleSubscribe)
		r.Put("/subscriptions", h.handleSubscriptionUpdate)
		r.Get("/subscriptions/status", h.handleSubscriptionStatus)
		r.Get("/subscriptions/history", h.handleSubscriptionHistory)
		r.Post("/subscriptions/cancel", h.handleUnsubscribe)
		r.Get("/recommendations", h.handleRecommendations)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
