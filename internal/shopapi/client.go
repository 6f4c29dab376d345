// Package shopapi is the typed HTTP client for the remote shop backend. All
// storefront services go through it: catalog lookups, the persisted cart,
// authentication and account management.
//
// The backend is JSON over a shared base URL with a fixed request timeout.
// Listing endpoints signal "nothing matched" with a 404, which this client
// reinterprets as an empty result set.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/pkg/platform/sentinel"
)

// Client talks to the shop backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New builds a client for the given base URL. The timeout applies per request
// at the transport level; there is no retry.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do issues one JSON request. Transport failures wrap sentinel.ErrUnavailable;
// non-2xx responses become *APIError carrying the backend's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "shop api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %v: %w", method, path, err, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload ack
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// listProducts fetches a product array, folding 404 into an empty slice.
func (c *Client) listProducts(ctx context.Context, path string) ([]Product, error) {
	var products []Product
	err := c.do(ctx, http.MethodGet, path, nil, &products)
	if errors.Is(err, sentinel.ErrNotFound) {
		return []Product{}, nil
	}
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FetchCart returns the persisted cart lines for a user. An empty cart comes
// back from the backend as a bare message with no items array.
func (c *Client) FetchCart(ctx context.Context, userID int64) ([]RemoteCartLine, error) {
	var cart remoteCart
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cart/%d", userID), nil, &cart); err != nil {
		return nil, err
	}
	if cart.Items == nil {
		return []RemoteCartLine{}, nil
	}
	return cart.Items, nil
}

// AddCartItem increments (or creates) the persisted line for a product.
// The backend treats quantity as a delta on the existing line.
func (c *Client) AddCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	body := map[string]any{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	}
	return c.do(ctx, http.MethodPost, "/cart/add", body, nil)
}

// RemoveCartItem deletes a persisted line by the backend's own line id.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID int64) error {
	body := map[string]any{"cart_item_id": cartItemID}
	return c.do(ctx, http.MethodDelete, "/cart/remove", body, nil)
}

// Product resolves a single catalog record.
func (c *Client) Product(ctx context.Context, productID int64) (Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", productID), nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// BestSellers returns the top best-selling products.
func (c *Client) BestSellers(ctx context.Context) ([]Product, error) {
	return c.listProducts(ctx, "/best-sellers/top")
}

// AllBestSellers returns the full best-seller list including quantities sold.
func (c *Client) AllBestSellers(ctx context.Context) ([]Product, error) {
	return c.listProducts(ctx, "/best-sellers")
}

// Collection lists products for an already-slugged category path segment.
func (c *Client) Collection(ctx context.Context, slug string) ([]Product, error) {
	return c.listProducts(ctx, "/collection/"+url.PathEscape(slug))
}

// Search runs a free-text search. The query must already be in SearchQuery
// form; it is spliced into the URL verbatim so the plus separators survive.
func (c *Client) Search(ctx context.Context, query string) ([]Product, error) {
	return c.listProducts(ctx, "/search?q="+query)
}

// Recommendations lists products recommended for a user. Users with no view
// history get a 404 from the backend, which is an empty list here.
func (c *Client) Recommendations(ctx context.Context, email string) ([]Product, error) {
	return c.listProducts(ctx, "/recommendations?email="+url.QueryEscape(email))
}

// TrackProductView records a product view for the recommendation engine.
func (c *Client) TrackProductView(ctx context.Context, productID int64, email string) error {
	body := map[string]any{"email": email}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/view-product/%d", productID), body, nil)
}

// Login authenticates one user. Invalid credentials come back as *APIError
// with the backend's message.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// Register creates a new account and returns the backend's message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var result ack
	if err := c.do(ctx, http.MethodPost, "/register", req, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// ForgotPassword requests a reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var result ack
	if err := c.do(ctx, http.MethodPost, "/forgot-password", map[string]string{"email": email}, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// ResetPassword applies a password reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	body := map[string]string{"token": token, "password": password}
	var result ack
	if err := c.do(ctx, http.MethodPost, "/reset-password", body, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// Profile reads the account record for an email.
func (c *Client) Profile(ctx context.Context, email string) (Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/profile?email="+url.QueryEscape(email), nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// UpdateProfile writes the full account record.
func (c *Client) UpdateProfile(ctx context.Context, profile Profile) (string, error) {
	var result ack
	if err := c.do(ctx, http.MethodPut, "/profile", profile, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// Subscribe starts a product subscription.
func (c *Client) Subscribe(ctx context.Context, req SubscriptionRequest) (string, error) {
	var result ack
	if err := c.do(ctx, http.MethodPost, "/subscribe", req, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// UpdateSubscription changes the frequency and quantity of an existing
// subscription.
func (c *Client) UpdateSubscription(ctx context.Context, req SubscriptionRequest) (string, error) {
	var result ack
	if err := c.do(ctx, http.MethodPut, "/subscriptions", req, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// SubscriptionStatus reports the state of one subscription: active, paused or
// cancelled.
func (c *Client) SubscriptionStatus(ctx context.Context, email string, productID int64) (string, error) {
	path := fmt.Sprintf("/subscription-status?email=%s&product_id=%d", url.QueryEscape(email), productID)
	var result struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return "", err
	}
	return result.Status, nil
}

// SubscriptionHistory lists every subscription a user has held, cancelled
// ones included.
func (c *Client) SubscriptionHistory(ctx context.Context, email string) ([]SubscriptionRecord, error) {
	var records []SubscriptionRecord
	if err := c.do(ctx, http.MethodGet, "/subscription-history?email="+url.QueryEscape(email), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Unsubscribe cancels a product subscription.
func (c *Client) Unsubscribe(ctx context.Context, email string, productID int64) (string, error) {
	body := map[string]any{"email": email, "product_id": productID}
	var result ack
	if err := c.do(ctx, http.MethodPost, "/unsubscribe", body, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}
