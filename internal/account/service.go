// Package account wraps the shop backend's user-facing account operations:
// authentication, registration, password reset, profile management,
// subscriptions and recommendations.
//
// Backend validation failures arrive as *shopapi.APIError and are passed
// through unchanged so the transport layer can surface the message inline.
package account

import (
	"context"
	"log/slog"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
)

// ShopAPI is the slice of the shop backend the account service needs.
type ShopAPI interface {
	Login(ctx context.Context, email, password string) (shopapi.LoginResult, error)
	Register(ctx context.Context, req shopapi.RegisterRequest) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
	Profile(ctx context.Context, email string) (shopapi.Profile, error)
	UpdateProfile(ctx context.Context, profile shopapi.Profile) (string, error)
	Subscribe(ctx context.Context, req shopapi.SubscriptionRequest) (string, error)
	UpdateSubscription(ctx context.Context, req shopapi.SubscriptionRequest) (string, error)
	SubscriptionStatus(ctx context.Context, email string, productID int64) (string, error)
	SubscriptionHistory(ctx context.Context, email string) ([]shopapi.SubscriptionRecord, error)
	Unsubscribe(ctx context.Context, email string, productID int64) (string, error)
	Recommendations(ctx context.Context, email string) ([]shopapi.Product, error)
}

// Service handles account operations for the storefront.
type Service struct {
	api    ShopAPI
	logger *slog.Logger
}

// New constructs an account service.
func New(api ShopAPI, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Login authenticates against the shop backend. Authentication is one
// blocking request; success or failure is reported synchronously.
func (s *Service) Login(ctx context.Context, email, password string) (session.User, error) {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return session.User{}, err
	}
	return session.User{ID: result.UserID, Name: result.Name, Email: email}, nil
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, req shopapi.RegisterRequest) (string, error) {
	return s.api.Register(ctx, req)
}

// ForgotPassword requests a password reset email.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	return s.api.ForgotPassword(ctx, email)
}

// ResetPassword applies a reset token with the new password.
func (s *Service) ResetPassword(ctx context.Context, token, password string) (string, error) {
	return s.api.ResetPassword(ctx, token, password)
}

// Profile reads the account record.
func (s *Service) Profile(ctx context.Context, email string) (shopapi.Profile, error) {
	return s.api.Profile(ctx, email)
}

// UpdateProfile writes the full account record.
func (s *Service) UpdateProfile(ctx context.Context, profile shopapi.Profile) (string, error) {
	return s.api.UpdateProfile(ctx, profile)
}

// Subscribe starts a product subscription.
func (s *Service) Subscribe(ctx context.Context, req shopapi.SubscriptionRequest) (string, error) {
	return s.api.Subscribe(ctx, req)
}

// UpdateSubscription changes the frequency and quantity of a subscription.
func (s *Service) UpdateSubscription(ctx context.Context, req shopapi.SubscriptionRequest) (string, error) {
	return s.api.UpdateSubscription(ctx, req)
}

// SubscriptionStatus reports whether one subscription is active, paused or
// cancelled.
func (s *Service) SubscriptionStatus(ctx context.Context, email string, productID int64) (string, error) {
	return s.api.SubscriptionStatus(ctx, email, productID)
}

// SubscriptionHistory lists every subscription a user has held.
func (s *Service) SubscriptionHistory(ctx context.Context, email string) ([]shopapi.SubscriptionRecord, error) {
	return s.api.SubscriptionHistory(ctx, email)
}

// Unsubscribe cancels a product subscription.
func (s *Service) Unsubscribe(ctx context.Context, email string, productID int64) (string, error) {
	return s.api.Unsubscribe(ctx, email, productID)
}

// Recommendations lists recommended products for a user.
func (s *Service) Recommendations(ctx context.Context, email string) ([]shopapi.Product, error) {
	return s.api.Recommendations(ctx, email)
}
