// Package bridge captures the navigation context right before a forced
// redirect to authentication and replays it exactly once after
// authentication succeeds.
package bridge

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
)

// Intent is the saved "where to go back to" state: the path the visitor was
// on plus whatever in-flight page payload the view was carrying.
type Intent struct {
	From string          `json:"from"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Store holds at most one intent per browsing session. Save overwrites,
// Consume is read-then-clear.
type Store interface {
	Save(ctx context.Context, sessionID uuid.UUID, intent Intent) error
	Consume(ctx context.Context, sessionID uuid.UUID) (*Intent, error)
}

// Bridge applies the capture/replay policy over a Store.
type Bridge struct {
	store  Store
	logger *slog.Logger
}

// New constructs a bridge over the given store.
func New(store Store, logger *slog.Logger) *Bridge {
	return &Bridge{store: store, logger: logger}
}

// Capture saves the navigation context for one session, overwriting any
// previous capture. Invoked immediately before redirecting to the
// authentication entry point.
func (b *Bridge) Capture(ctx context.Context, sessionID uuid.UUID, intent Intent) error {
	return b.store.Save(ctx, sessionID, intent)
}

// Consume returns the captured intent and clears the slot, so a second call
// after a successful consume returns nil. Nil also means nothing was ever
// captured, in which case the caller defaults to the storefront home.
func (b *Bridge) Consume(ctx context.Context, sessionID uuid.UUID) (*Intent, error) {
	intent, err := b.store.Consume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if intent != nil {
		b.logger.DebugContext(ctx, "replaying redirect intent", "session_id", sessionID, "from", intent.From)
	}
	return intent, nil
}
