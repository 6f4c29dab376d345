package cart

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart/metrics"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
)

// CatalogLookup resolves a product id against the current catalog.
type CatalogLookup interface {
	Product(ctx context.Context, productID int64) (shopapi.Product, error)
}

// Enricher joins raw cart lines against the catalog to produce display-ready
// items. One lookup per line, all issued concurrently.
type Enricher struct {
	catalog CatalogLookup
	logger  *slog.Logger
}

// NewEnricher constructs an enricher over the given catalog.
func NewEnricher(catalog CatalogLookup, logger *slog.Logger) *Enricher {
	return &Enricher{catalog: catalog, logger: logger}
}

// Enrich resolves every line concurrently and zips each catalog record with
// the line's quantity. A line whose lookup fails is dropped from the output
// rather than failing the whole enrichment, so a cart can silently shrink
// when a product leaves the catalog. Surviving items keep the relative order
// of their source lines. Cancelling ctx aborts the in-flight lookups and
// returns the context error.
func (e *Enricher) Enrich(ctx context.Context, lines []Line) ([]Item, error) {
	if len(lines) == 0 {
		return []Item{}, nil
	}

	resolved := make([]*Item, len(lines))
	g, ctx := errgroup.WithContext(ctx)

	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			product, err := e.catalog.Product(ctx, line.ProductID)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// Product vanished or the lookup failed: drop the line.
				e.logger.WarnContext(ctx, "dropping cart line, catalog lookup failed",
					"product_id", line.ProductID,
					"error", err,
				)
				metrics.EnrichmentDrop()
				return nil
			}
			resolved[i] = &Item{
				ProductID:     product.ProductID,
				Name:          product.Name,
				Price:         product.Price,
				Category:      product.Category,
				ImageURL:      product.ImageURL,
				StockQuantity: product.StockQuantity,
				Quantity:      line.Quantity,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(lines))
	for _, item := range resolved {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, nil
}
