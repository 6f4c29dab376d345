// Command shopmock is an in-memory stand-in for the remote shop backend,
// implementing the routes the storefront gateway calls. It exists for local
// development and demos; data resets on restart.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/platform/httpserver"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/platform/logger"
)

type product struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity,omitempty"`
	QuantitySold  int     `json:"quantity_sold,omitempty"`
}

type user struct {
	UserID          int64
	Name            string
	Email           string
	PasswordHash    []byte
	PhoneNumber     string
	ShippingAddress string
}

type cartLine struct {
	CartItemID int64 `json:"cart_item_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

type subscription struct {
	SubscriptionID int64
	Email          string
	ProductID      int64
	Frequency      string
	Quantity       int
	Status         string
}

type server struct {
	mu            sync.Mutex
	products      []product
	bestSellers   map[int64]int
	users         map[string]*user
	carts         map[int64][]cartLine
	nextUserID    int64
	nextItemID    int64
	nextSubID     int64
	resetTokens   map[string]string
	viewed        map[string][]int64
	subscriptions []*subscription
}

func newServer() *server {
	s := &server{
		users:       make(map[string]*user),
		carts:       make(map[int64][]cartLine),
		resetTokens: make(map[string]string),
		viewed:      make(map[string][]int64),
		nextUserID:  1,
		nextItemID:  1,
		nextSubID:   1,
	}
	s.seed()
	return s
}

func (s *server) seed() {
	s.products = []product{
		{ProductID: 1, Name: "Green Tea", Description: "Classic sencha leaves", Price: 12.50, Category: "Tea", ImageURL: "/images/green-tea.jpg", StockQuantity: 120},
		{ProductID: 2, Name: "Earl Grey", Description: "Black tea with bergamot", Price: 14.00, Category: "Tea", ImageURL: "/images/earl-grey.jpg", StockQuantity: 80},
		{ProductID: 3, Name: "Chamomile", Description: "Caffeine free herbal blend", Price: 11.25, Category: "Tea", ImageURL: "/images/chamomile.jpg", StockQuantity: 60},
		{ProductID: 4, Name: "Cast Iron Teapot", Description: "0.8l tetsubin", Price: 48.00, Category: "Teaware", ImageURL: "/images/teapot.jpg", StockQuantity: 15},
		{ProductID: 5, Name: "Matcha Whisk", Description: "Bamboo chasen", Price: 19.75, Category: "Teaware", ImageURL: "/images/whisk.jpg", StockQuantity: 35},
		{ProductID: 6, Name: "Sesame Crackers", Description: "Tea time snack", Price: 6.50, Category: "Snack", ImageURL: "/images/crackers.jpg", StockQuantity: 200},
	}
	s.bestSellers = map[int64]int{1: 420, 4: 180, 2: 160, 6: 95, 5: 40}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	s.users["demo@example.com"] = &user{
		UserID:          s.nextUserID,
		Name:            "Demo Shopper",
		Email:           "demo@example.com",
		PasswordHash:    hash,
		PhoneNumber:     "555-0100",
		ShippingAddress: "1 Tea Lane",
	}
	s.nextUserID++
}

func (s *server) findProduct(id int64) *product {
	for i := range s.products {
		if s.products[i].ProductID == id {
			return &s.products[i]
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func message(w http.ResponseWriter, status int, text string) {
	writeJSON(w, status, map[string]string{"message": text})
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		message(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Email]
	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		message(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": u.UserID,
		"name":    u.Name,
		"message": "Login successful",
	})
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		PhoneNumber     string `json:"phone_number"`
		ShippingAddress string `json:"shipping_address"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		message(w, http.StatusBadRequest, "Email already exists")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		message(w, http.StatusInternalServerError, "could not hash password")
		return
	}
	s.users[req.Email] = &user{
		UserID:          s.nextUserID,
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    hash,
		PhoneNumber:     req.PhoneNumber,
		ShippingAddress: req.ShippingAddress,
	}
	s.nextUserID++
	message(w, http.StatusCreated, "User registered successfully")
}

func (s *server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.Email]; !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	token := uuid.NewString()
	s.resetTokens[token] = req.Email
	// No mail delivery here; the token comes back in the response instead.
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset email sent",
		"token":   token,
	})
}

func (s *server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.resetTokens[req.Token]
	if !ok {
		message(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}
	delete(s.resetTokens, req.Token)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		message(w, http.StatusInternalServerError, "could not hash password")
		return
	}
	s.users[email].PasswordHash = hash
	message(w, http.StatusOK, "Password reset successfully")
}

func (s *server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		email := r.URL.Query().Get("email")

		s.mu.Lock()
		defer s.mu.Unlock()

		u, ok := s.users[email]
		if !ok {
			message(w, http.StatusNotFound, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"name":             u.Name,
			"email":            u.Email,
			"phone_number":     u.PhoneNumber,
			"shipping_address": u.ShippingAddress,
		})
		return
	}

	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		PhoneNumber     string `json:"phone_number"`
		ShippingAddress string `json:"shipping_address"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Email]
	if !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	u.Name = req.Name
	u.PhoneNumber = req.PhoneNumber
	u.ShippingAddress = req.ShippingAddress
	message(w, http.StatusOK, "Profile updated successfully")
}

func (s *server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		message(w, http.StatusBadRequest, "invalid product id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findProduct(id)
	if p == nil {
		message(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// bestSellerList assembles the seller products sorted by quantity sold.
// Callers must hold the lock.
func (s *server) bestSellerList() []product {
	sellers := make([]product, 0, len(s.bestSellers))
	for id, sold := range s.bestSellers {
		if p := s.findProduct(id); p != nil {
			seller := *p
			seller.QuantitySold = sold
			sellers = append(sellers, seller)
		}
	}
	sort.Slice(sellers, func(i, j int) bool {
		return sellers[i].QuantitySold > sellers[j].QuantitySold
	})
	return sellers
}

func (s *server) handleTopBestSellers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sellers := s.bestSellerList()
	if len(sellers) > 4 {
		sellers = sellers[:4]
	}
	writeJSON(w, http.StatusOK, sellers)
}

func (s *server) handleAllBestSellers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.bestSellerList())
}

func (s *server) handleCollection(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "category")

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []product
	for _, p := range s.products {
		category := strings.ReplaceAll(strings.ToLower(p.Category), " ", "-")
		// "teas" works as a plural alias for the tea category.
		if category == slug || category+"s" == slug {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		message(w, http.StatusNotFound, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, matched)
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		message(w, http.StatusBadRequest, "No query provided")
		return
	}
	query = strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []product
	for _, p := range s.products {
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
		if strings.Contains(haystack, query) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		message(w, http.StatusNotFound, "No products found")
		return
	}
	writeJSON(w, http.StatusOK, matched)
}

func (s *server) handleCartView(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		message(w, http.StatusBadRequest, "invalid user id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	if len(lines) == 0 {
		message(w, http.StatusOK, "Cart is empty")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": lines})
}

func (s *server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    int64 `json:"user_id"`
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[req.UserID]
	for i := range lines {
		if lines[i].ProductID == req.ProductID {
			lines[i].Quantity += req.Quantity
			s.carts[req.UserID] = lines
			message(w, http.StatusCreated, "Item added to cart successfully")
			return
		}
	}
	s.carts[req.UserID] = append(lines, cartLine{
		CartItemID: s.nextItemID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	s.nextItemID++
	message(w, http.StatusCreated, "Item added to cart successfully")
}

func (s *server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CartItemID int64 `json:"cart_item_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, lines := range s.carts {
		for i := range lines {
			if lines[i].CartItemID == req.CartItemID {
				s.carts[userID] = append(lines[:i], lines[i+1:]...)
				message(w, http.StatusOK, "Item removed from cart successfully")
				return
			}
		}
	}
	message(w, http.StatusNotFound, "Cart item not found")
}

func (s *server) handleViewProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		message(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.Email]; !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	for _, viewed := range s.viewed[req.Email] {
		if viewed == id {
			message(w, http.StatusOK, fmt.Sprintf("Product %d viewed successfully", id))
			return
		}
	}
	s.viewed[req.Email] = append(s.viewed[req.Email], id)
	message(w, http.StatusOK, fmt.Sprintf("Product %d viewed successfully", id))
}

func (s *server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	viewed := s.viewed[email]
	if len(viewed) == 0 {
		message(w, http.StatusNotFound, "No viewed products found")
		return
	}

	viewedSet := make(map[int64]bool, len(viewed))
	categories := make(map[string]bool)
	for _, id := range viewed {
		viewedSet[id] = true
		if p := s.findProduct(id); p != nil {
			categories[p.Category] = true
		}
	}

	var recommended []product
	for _, p := range s.products {
		if categories[p.Category] && !viewedSet[p.ProductID] {
			recommended = append(recommended, p)
			if len(recommended) == 5 {
				break
			}
		}
	}
	writeJSON(w, http.StatusOK, recommended)
}

func (s *server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		ProductID int64  `json:"product_id"`
		Frequency string `json:"frequency"`
		Quantity  int    `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.Email]; !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	if s.findProduct(req.ProductID) == nil {
		message(w, http.StatusNotFound, "Product not found")
		return
	}
	s.subscriptions = append(s.subscriptions, &subscription{
		SubscriptionID: s.nextSubID,
		Email:          req.Email,
		ProductID:      req.ProductID,
		Frequency:      req.Frequency,
		Quantity:       req.Quantity,
		Status:         "active",
	})
	s.nextSubID++
	message(w, http.StatusCreated, "Subscribed successfully")
}

// findSubscription returns the user's subscription for a product regardless
// of status. Callers must hold the lock.
func (s *server) findSubscription(email string, productID int64) *subscription {
	for _, sub := range s.subscriptions {
		if sub.Email == email && sub.ProductID == productID {
			return sub
		}
	}
	return nil
}

func (s *server) handleSubscriptionUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		ProductID int64  `json:"product_id"`
		Frequency string `json:"frequency"`
		Quantity  int    `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.Email]; !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	sub := s.findSubscription(req.Email, req.ProductID)
	if sub == nil {
		message(w, http.StatusNotFound, "Subscription not found")
		return
	}
	sub.Frequency = req.Frequency
	sub.Quantity = req.Quantity
	message(w, http.StatusOK, "Subscription updated successfully")
}

func (s *server) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	productID, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	if err != nil {
		message(w, http.StatusBadRequest, "invalid product id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	sub := s.findSubscription(email, productID)
	if sub == nil {
		message(w, http.StatusNotFound, "Subscription not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": sub.Status})
}

func (s *server) handleSubscriptionHistory(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	history := make([]map[string]any, 0)
	for _, sub := range s.subscriptions {
		if sub.Email == email {
			history = append(history, map[string]any{
				"subscription_id": sub.SubscriptionID,
				"product_id":      sub.ProductID,
				"status":          sub.Status,
			})
		}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		ProductID int64  `json:"product_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subscriptions {
		if sub.Email == req.Email && sub.ProductID == req.ProductID && sub.Status == "active" {
			sub.Status = "cancelled"
			message(w, http.StatusOK, "Unsubscribed successfully")
			return
		}
	}
	message(w, http.StatusNotFound, "Subscription not found")
}

func main() {
	log := logger.New()
	s := newServer()

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("working"))
	})
	r.Post("/login", s.handleLogin)
	r.Post("/register", s.handleRegister)
	r.Post("/forgot-password", s.handleForgotPassword)
	r.Post("/reset-password", s.handleResetPassword)
	r.Get("/profile", s.handleProfile)
	r.Put("/profile", s.handleProfile)
	r.Get("/products/{productID}", s.handleProduct)
	r.Post("/view-product/{productID}", s.handleViewProduct)
	r.Get("/best-sellers", s.handleAllBestSellers)
	r.Get("/best-sellers/top", s.handleTopBestSellers)
	r.Get("/collection/{category}", s.handleCollection)
	r.Get("/search", s.handleSearch)
	r.Get("/cart/{userID}", s.handleCartView)
	r.Post("/cart/add", s.handleCartAdd)
	r.Delete("/cart/remove", s.handleCartRemove)
	r.Get("/recommendations", s.handleRecommendations)
	r.Post("/subscribe", s.handleSubscribe)
	r.Put("/subscriptions", s.handleSubscriptionUpdate)
	r.Get("/subscription-status", s.handleSubscriptionStatus)
	r.Get("/subscription-history", s.handleSubscriptionHistory)
	r.Post("/unsubscribe", s.handleUnsubscribe)

	addr := os.Getenv("SHOPMOCK_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	log.Info("starting shopmock", "addr", addr)
	if err := httpserver.New(addr, r).ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
