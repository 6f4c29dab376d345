package cart

//go:generate mockgen -source=sync.go -destination=mocks/mocks.go -package=mocks RemoteCart

import (
	"context"
	"log/slog"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart/metrics"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
)

// RemoteCart is the persisted cart on the shop backend. Lines there are
// addressed by a server-assigned cart_item_id, not by product id.
type RemoteCart interface {
	FetchCart(ctx context.Context, userID int64) ([]shopapi.RemoteCartLine, error)
	AddCartItem(ctx context.Context, userID, productID int64, quantity int) error
	RemoveCartItem(ctx context.Context, cartItemID int64) error
}

// Shopper identifies the browsing session for persistence gating. The zero
// value is an anonymous visitor.
type Shopper struct {
	UserID        int64
	Authenticated bool
}

// SyncService mirrors Cart Store mutations to the remote persisted cart while
// the session is authenticated, and pulls the remote cart on login.
//
// Every local mutation is applied immediately and unconditionally; the remote
// call is best effort. Failures are logged and counted, never surfaced to the
// user, never retried, never rolled back. The UI always reflects the user's
// last intended action even if the backend never recorded it.
type SyncService struct {
	remote   RemoteCart
	enricher *Enricher
	logger   *slog.Logger
}

// NewSyncService constructs a sync service over the remote cart API.
func NewSyncService(remote RemoteCart, enricher *Enricher, logger *slog.Logger) *SyncService {
	return &SyncService{remote: remote, enricher: enricher, logger: logger}
}

// Add puts quantity units of a product in the local cart and, for
// authenticated shoppers, mirrors the increment to the remote cart.
func (s *SyncService) Add(ctx context.Context, shopper Shopper, store *Store, productID int64, quantity int) {
	store.Add(productID, quantity)

	if !shopper.Authenticated {
		return
	}
	if err := s.remote.AddCartItem(ctx, shopper.UserID, productID, quantity); err != nil {
		s.logger.WarnContext(ctx, "remote cart add failed, keeping local state",
			"user_id", shopper.UserID,
			"product_id", productID,
			"error", err,
		)
		metrics.RemoteWriteFailure("add")
	}
}

// Update applies a quantity delta locally and mirrors it remotely. The remote
// add endpoint treats quantity as a delta on the existing line, so decrements
// go through the same call.
func (s *SyncService) Update(ctx context.Context, shopper Shopper, store *Store, productID int64, delta int) {
	store.Update(productID, delta)

	if !shopper.Authenticated {
		return
	}
	if err := s.remote.AddCartItem(ctx, shopper.UserID, productID, delta); err != nil {
		s.logger.WarnContext(ctx, "remote cart update failed, keeping local state",
			"user_id", shopper.UserID,
			"product_id", productID,
			"error", err,
		)
		metrics.RemoteWriteFailure("update")
	}
}

// Remove deletes the line locally and, for authenticated shoppers, resolves
// the server's line id and deletes by it. The remote store addresses lines by
// cart_item_id, so removal is a fetch-then-match-then-delete protocol; when no
// remote line matches, the remote call is skipped and only the local removal
// stands.
func (s *SyncService) Remove(ctx context.Context, shopper Shopper, store *Store, productID int64) {
	store.Remove(productID)

	if !shopper.Authenticated {
		return
	}

	lines, err := s.remote.FetchCart(ctx, shopper.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "remote cart fetch for removal failed, keeping local state",
			"user_id", shopper.UserID,
			"product_id", productID,
			"error", err,
		)
		metrics.RemoteWriteFailure("remove")
		return
	}

	var cartItemID int64
	found := false
	for _, line := range lines {
		if line.ProductID == productID {
			cartItemID = line.CartItemID
			found = true
			break
		}
	}
	if !found {
		s.logger.DebugContext(ctx, "no remote cart line for product, skipping remote removal",
			"user_id", shopper.UserID,
			"product_id", productID,
		)
		return
	}

	if err := s.remote.RemoveCartItem(ctx, cartItemID); err != nil {
		s.logger.WarnContext(ctx, "remote cart removal failed, keeping local state",
			"user_id", shopper.UserID,
			"cart_item_id", cartItemID,
			"error", err,
		)
		metrics.RemoteWriteFailure("remove")
	}
}

// HandleLogin pulls the user's persisted cart and replaces the local store
// with it. This is an unconditional overwrite: lines added while anonymous
// are discarded, not merged. Returns the enriched view of the pulled cart.
//
// A failed pull leaves the local cart untouched and is reported to the caller
// only through the returned error; the login itself already succeeded.
func (s *SyncService) HandleLogin(ctx context.Context, shopper Shopper, store *Store) ([]Item, error) {
	remoteLines, err := s.remote.FetchCart(ctx, shopper.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "remote cart pull on login failed",
			"user_id", shopper.UserID,
			"error", err,
		)
		return nil, err
	}
	metrics.CartPull()

	lines := make([]Line, 0, len(remoteLines))
	for _, remote := range remoteLines {
		lines = append(lines, Line{ProductID: remote.ProductID, Quantity: remote.Quantity})
	}
	store.Replace(lines)

	return s.enricher.Enrich(ctx, store.Lines())
}
