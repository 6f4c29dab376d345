package httptransport

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/account"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/catalog"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session/bridge"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/pkg/testutil"
)

// stubBackend fakes the remote shop backend over real HTTP so the gateway is
// exercised through the shopapi client, wire shapes included.
type stubBackend struct {
	mu         sync.Mutex
	products   map[int64]shopapi.Product
	carts      map[int64][]shopapi.RemoteCartLine
	nextItemID int64
	addCalls   int
	viewCalls  int
	lastSlug   string
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		products: map[int64]shopapi.Product{
			1: {ProductID: 1, Name: "Green Tea", Price: 12.50, Category: "Tea", StockQuantity: 120},
			2: {ProductID: 2, Name: "Earl Grey", Price: 14.00, Category: "Tea", StockQuantity: 80},
			3: {ProductID: 3, Name: "Teapot", Price: 48.00, Category: "Teaware", StockQuantity: 15},
		},
		carts:      make(map[int64][]shopapi.RemoteCartLine),
		nextItemID: 100,
	}
}

func (b *stubBackend) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Email != "demo@example.com" || body.Password != "password123" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": 7, "name": "Demo Shopper", "message": "Login successful"})
	})

	r.Get("/cart/{userID}", func(w http.ResponseWriter, req *http.Request) {
		userID, _ := strconv.ParseInt(chi.URLParam(req, "userID"), 10, 64)
		b.mu.Lock()
		defer b.mu.Unlock()
		lines := b.carts[userID]
		if len(lines) == 0 {
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Cart is empty"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": lines})
	})

	r.Post("/cart/add", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			UserID    int64 `json:"user_id"`
			ProductID int64 `json:"product_id"`
			Quantity  int   `json:"quantity"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.addCalls++
		lines := b.carts[body.UserID]
		for i := range lines {
			if lines[i].ProductID == body.ProductID {
				lines[i].Quantity += body.Quantity
				b.carts[body.UserID] = lines
				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Item added to cart successfully"})
				return
			}
		}
		b.carts[body.UserID] = append(lines, shopapi.RemoteCartLine{
			CartItemID: b.nextItemID, ProductID: body.ProductID, Quantity: body.Quantity,
		})
		b.nextItemID++
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Item added to cart successfully"})
	})

	r.Delete("/cart/remove", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			CartItemID int64 `json:"cart_item_id"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		for userID, lines := range b.carts {
			for i := range lines {
				if lines[i].CartItemID == body.CartItemID {
					b.carts[userID] = append(lines[:i], lines[i+1:]...)
					_ = json.NewEncoder(w).Encode(map[string]string{"message": "Item removed from cart successfully"})
					return
				}
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Cart item not found"})
	})

	r.Get("/products/{productID}", func(w http.ResponseWriter, req *http.Request) {
		productID, _ := strconv.ParseInt(chi.URLParam(req, "productID"), 10, 64)
		b.mu.Lock()
		product, ok := b.products[productID]
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Product not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(product)
	})

	r.Get("/best-sellers/top", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]shopapi.Product{b.products[1], b.products[3]})
	})

	r.Get("/best-sellers", func(w http.ResponseWriter, _ *http.Request) {
		full := []shopapi.Product{b.products[1], b.products[3], b.products[2]}
		for i := range full {
			full[i].QuantitySold = 100 - i
		}
		_ = json.NewEncoder(w).Encode(full)
	})

	r.Get("/subscription-status", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("email") != "demo@example.com" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "User not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "active"})
	})

	r.Get("/subscription-history", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]shopapi.SubscriptionRecord{
			{SubscriptionID: 1, ProductID: 3, Status: "cancelled"},
			{SubscriptionID: 2, ProductID: 1, Status: "active"},
		})
	})

	r.Put("/subscriptions", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Subscription updated successfully"})
	})

	r.Get("/collection/{slug}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		b.lastSlug = chi.URLParam(req, "slug")
		b.mu.Unlock()
		if b.lastSlug != "teas" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Category not found"})
			return
		}
		_ = json.NewEncoder(w).Encode([]shopapi.Product{b.products[1], b.products[2]})
	})

	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "No products found"})
	})

	r.Post("/view-product/{productID}", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.viewCalls++
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})

	return r
}

type GatewaySuite struct {
	suite.Suite
	backend *stubBackend
	router  http.Handler
}

func (s *GatewaySuite) SetupTest() {
	s.backend = newStubBackend()
	server := httptest.NewServer(s.backend.router())
	s.T().Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := shopapi.New(server.URL, 5*time.Second, logger)
	enricher := cart.NewEnricher(api, logger)

	handler := NewHandler(
		session.NewRegistry(),
		session.NewTokenService("test-signing-key", time.Hour),
		cart.NewSyncService(api, enricher, logger),
		enricher,
		catalog.New(api, logger),
		account.New(api, logger),
		bridge.New(bridge.NewMemory(), logger),
		logger,
	)
	s.router = NewRouter(handler)
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

// newSession creates a browsing session and returns its bearer token.
func (s *GatewaySuite) newSession() string {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/session/", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[map[string]string](s.T(), rr)
	token := (*resp)["session_token"]
	s.Require().NotEmpty(token)
	return token
}

func (s *GatewaySuite) do(token, method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	if token != "" {
		req = testutil.WithSessionToken(req, token)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *GatewaySuite) login(token string) {
	rr := s.do(token, http.MethodPost, "/session/login", map[string]string{
		"email": "demo@example.com", "password": "password123",
	})
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
}

// TestSessionLifecycle covers session addressing and the auth gate.
func (s *GatewaySuite) TestSessionLifecycle() {
	s.Run("cart endpoints require a session", func() {
		rr := s.do("", http.MethodGet, "/session/cart", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("a bogus token is treated as no session", func() {
		rr := s.do("not-a-token", http.MethodGet, "/session/cart", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("a fresh session has an empty closed cart", func() {
		token := s.newSession()
		rr := s.do(token, http.MethodGet, "/session/cart", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		view := testutil.UnmarshalResponse[cartViewResponse](s.T(), rr)
		s.False(view.Open)
		s.Zero(view.Count)
		s.Empty(view.Items)
	})
}

// TestAnonymousCart covers the local-only cart before authentication.
func (s *GatewaySuite) TestAnonymousCart() {
	token := s.newSession()

	s.Run("add opens the drawer and stays local", func() {
		rr := s.do(token, http.MethodPost, "/session/cart/items", map[string]any{"product_id": 1, "quantity": 2})
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "count", float64(2))

		view := testutil.UnmarshalResponse[cartViewResponse](s.T(), s.do(token, http.MethodGet, "/session/cart", nil))
		s.True(view.Open)
		s.Require().Len(view.Items, 1)
		s.Equal("Green Tea", view.Items[0].Name)
		s.Equal(2, view.Items[0].Quantity)

		s.Zero(s.backend.addCalls)
	})

	s.Run("close dismisses the drawer", func() {
		rr := s.do(token, http.MethodPost, "/session/cart/close", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

		view := testutil.UnmarshalResponse[cartViewResponse](s.T(), s.do(token, http.MethodGet, "/session/cart", nil))
		s.False(view.Open)
	})

	s.Run("update to zero removes the line", func() {
		rr := s.do(token, http.MethodPatch, "/session/cart/items/1", map[string]int{"delta": -2})
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "count", float64(0))
	})

	s.Run("validation rejects bad payloads", func() {
		rr := s.do(token, http.MethodPost, "/session/cart/items", map[string]any{"quantity": 1})
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)

		rr = s.do(token, http.MethodPatch, "/session/cart/items/1", map[string]int{"delta": 0})
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

// TestLogin covers authentication and the cart overwrite pull.
func (s *GatewaySuite) TestLogin() {
	s.Run("invalid credentials surface the backend message", func() {
		token := s.newSession()
		rr := s.do(token, http.MethodPost, "/session/login", map[string]string{
			"email": "demo@example.com", "password": "wrong",
		})
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertMessage(s.T(), rr, "Invalid credentials")
	})

	s.Run("login replaces the anonymous cart with the persisted one", func() {
		s.backend.carts[7] = []shopapi.RemoteCartLine{{CartItemID: 50, ProductID: 2, Quantity: 1}}

		token := s.newSession()
		s.do(token, http.MethodPost, "/session/cart/items", map[string]any{"product_id": 1, "quantity": 3})

		rr := s.do(token, http.MethodPost, "/session/login", map[string]string{
			"email": "demo@example.com", "password": "password123",
		})
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[loginResponse](s.T(), rr)
		s.Equal(int64(7), resp.UserID)
		s.Require().Len(resp.Items, 1)
		s.Equal("Earl Grey", resp.Items[0].Name)
	})

	s.Run("a second login on the same session conflicts", func() {
		token := s.newSession()
		s.login(token)

		rr := s.do(token, http.MethodPost, "/session/login", map[string]string{
			"email": "demo@example.com", "password": "password123",
		})
		testutil.AssertStatus(s.T(), rr, http.StatusConflict)
	})
}

// TestAuthenticatedCart covers remote mirroring after login.
func (s *GatewaySuite) TestAuthenticatedCart() {
	token := s.newSession()
	s.login(token)

	s.Run("add mirrors to the persisted cart", func() {
		rr := s.do(token, http.MethodPost, "/session/cart/items", map[string]any{"product_id": 3, "quantity": 1})
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		s.backend.mu.Lock()
		lines := s.backend.carts[7]
		s.backend.mu.Unlock()
		s.Require().Len(lines, 1)
		s.Equal(int64(3), lines[0].ProductID)
	})

	s.Run("remove resolves the backend line id and deletes it", func() {
		rr := s.do(token, http.MethodDelete, "/session/cart/items/3", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "count", float64(0))

		s.backend.mu.Lock()
		lines := s.backend.carts[7]
		s.backend.mu.Unlock()
		s.Empty(lines)
	})

	s.Run("logout clears the local cart and downgrades the session", func() {
		s.do(token, http.MethodPost, "/session/cart/items", map[string]any{"product_id": 1})
		rr := s.do(token, http.MethodPost, "/session/logout", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		view := testutil.UnmarshalResponse[cartViewResponse](s.T(), s.do(token, http.MethodGet, "/session/cart", nil))
		s.Zero(view.Count)
		s.False(view.Open)
	})
}

// TestStorefront covers the public catalog surface.
func (s *GatewaySuite) TestStorefront() {
	s.Run("collection labels are slugged on the way out", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/storefront/collections/Teas"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		products := testutil.UnmarshalResponse[[]shopapi.Product](s.T(), rr)
		s.Len(*products, 2)
		s.Equal("teas", s.backend.lastSlug)
	})

	s.Run("an unknown collection is an empty list, not an error", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/storefront/collections/Nope"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Empty(*testutil.UnmarshalResponse[[]shopapi.Product](s.T(), rr))
	})

	s.Run("search without a query is rejected", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/storefront/search"))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("a no-hit search is an empty list", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/storefront/search?q=nothing"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Empty(*testutil.UnmarshalResponse[[]shopapi.Product](s.T(), rr))
	})

	s.Run("unknown products are a 404 with the backend message", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/storefront/products/99"))
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})

	s.Run("anonymous product views are not tracked", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/storefront/products/1"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Zero(s.backend.viewCalls)
	})

	s.Run("authenticated product views feed the recommendation engine", func() {
		token := s.newSession()
		s.login(token)

		rr := s.do(token, http.MethodGet, "/storefront/products/1", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		s.backend.mu.Lock()
		views := s.backend.viewCalls
		s.backend.mu.Unlock()
		s.Equal(1, views)
	})
}

// TestSubscriptions covers the subscription lifecycle surface.
func (s *GatewaySuite) TestSubscriptions() {
	s.Run("the full best-seller list is public", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/storefront/best-sellers/all"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		products := testutil.UnmarshalResponse[[]shopapi.Product](s.T(), rr)
		s.Require().Len(*products, 3)
		s.Equal(100, (*products)[0].QuantitySold)
	})

	s.Run("status requires both email and product id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/account/subscriptions/status?email=demo@example.com"))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("status reports the subscription state", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/account/subscriptions/status?email=demo@example.com&product_id=3"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "status", "active")
	})

	s.Run("unknown users get the backend 404 message", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/account/subscriptions/status?email=nobody@example.com&product_id=3"))
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
		testutil.AssertMessage(s.T(), rr, "User not found")
	})

	s.Run("history lists cancelled subscriptions too", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/account/subscriptions/history?email=demo@example.com"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		records := testutil.UnmarshalResponse[[]shopapi.SubscriptionRecord](s.T(), rr)
		s.Require().Len(*records, 2)
		s.Equal("cancelled", (*records)[0].Status)
	})

	s.Run("update passes through to the backend", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPut, "/account/subscriptions", map[string]any{
			"email": "demo@example.com", "product_id": 3, "frequency": "monthly", "quantity": 2,
		}))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertMessage(s.T(), rr, "Subscription updated successfully")
	})
}

// TestRedirectIntent covers the capture/replay bridge endpoints.
func (s *GatewaySuite) TestRedirectIntent() {
	token := s.newSession()

	s.Run("capture requires a from path", func() {
		rr := s.do(token, http.MethodPost, "/session/redirect-intent", map[string]string{})
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("consume replays the capture exactly once", func() {
		rr := s.do(token, http.MethodPost, "/session/redirect-intent", map[string]any{
			"from": "/products/3", "data": map[string]int{"scroll": 120},
		})
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)

		rr = s.do(token, http.MethodPost, "/session/redirect-intent/consume", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[map[string]*bridge.Intent](s.T(), rr)
		s.Require().NotNil((*resp)["intent"])
		s.Equal("/products/3", (*resp)["intent"].From)

		rr = s.do(token, http.MethodPost, "/session/redirect-intent/consume", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp = testutil.UnmarshalResponse[map[string]*bridge.Intent](s.T(), rr)
		s.Nil((*resp)["intent"])
	})
}
