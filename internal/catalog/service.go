// Package catalog exposes the browse operations the storefront pages call:
// best sellers, collections, search and product resolution. It owns the
// label-to-route normalization so callers pass free-text labels.
package catalog

import (
	"context"
	"log/slog"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
)

// ShopAPI is the slice of the shop backend the catalog needs.
type ShopAPI interface {
	Product(ctx context.Context, productID int64) (shopapi.Product, error)
	BestSellers(ctx context.Context) ([]shopapi.Product, error)
	AllBestSellers(ctx context.Context) ([]shopapi.Product, error)
	Collection(ctx context.Context, slug string) ([]shopapi.Product, error)
	Search(ctx context.Context, query string) ([]shopapi.Product, error)
	TrackProductView(ctx context.Context, productID int64, email string) error
}

// Service answers catalog queries for the storefront.
type Service struct {
	api    ShopAPI
	logger *slog.Logger
}

// New constructs a catalog service.
func New(api ShopAPI, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Product resolves one catalog record by id.
func (s *Service) Product(ctx context.Context, productID int64) (shopapi.Product, error) {
	return s.api.Product(ctx, productID)
}

// BestSellers returns the top best sellers, shown when the cart is empty.
func (s *Service) BestSellers(ctx context.Context) ([]shopapi.Product, error) {
	return s.api.BestSellers(ctx)
}

// AllBestSellers returns the full best-seller list with quantities sold.
func (s *Service) AllBestSellers(ctx context.Context) ([]shopapi.Product, error) {
	return s.api.AllBestSellers(ctx)
}

// Collection lists the products of a category given its free-text label.
// An unknown category is an empty collection, not an error.
func (s *Service) Collection(ctx context.Context, label string) ([]shopapi.Product, error) {
	return s.api.Collection(ctx, shopapi.CategorySlug(label))
}

// Search runs a free-text product search. No match is an empty result.
func (s *Service) Search(ctx context.Context, text string) ([]shopapi.Product, error) {
	return s.api.Search(ctx, shopapi.SearchQuery(text))
}

// TrackView records a product view for the recommendation engine. Best
// effort: failures are logged and dropped.
func (s *Service) TrackView(ctx context.Context, productID int64, email string) {
	if email == "" {
		return
	}
	if err := s.api.TrackProductView(ctx, productID, email); err != nil {
		s.logger.WarnContext(ctx, "product view tracking failed",
			"product_id", productID,
			"error", err,
		)
	}
}
