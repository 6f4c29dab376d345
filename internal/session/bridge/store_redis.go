package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const slotKeyPrefix = "storefront:redirect:"

// defaultSlotTTL bounds how long an un-consumed capture lingers. Captures are
// session-scoped, so anything older than a browsing session is stale.
const defaultSlotTTL = time.Hour

// Redis is the intent store for multi-instance gateway deployments, where the
// login request may land on a different instance than the capture.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithSlotTTL overrides the capture expiry.
func WithSlotTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

// NewRedis constructs a redis-backed intent store.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{client: client, ttl: defaultSlotTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Save overwrites the session's slot with expiry.
func (r *Redis) Save(ctx context.Context, sessionID uuid.UUID, intent Intent) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encode redirect intent: %w", err)
	}
	return r.client.Set(ctx, slotKeyPrefix+sessionID.String(), payload, r.ttl).Err()
}

// Consume atomically returns and clears the session's slot, nil when empty.
func (r *Redis) Consume(ctx context.Context, sessionID uuid.UUID) (*Intent, error) {
	payload, err := r.client.GetDel(ctx, slotKeyPrefix+sessionID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consume redirect intent: %w", err)
	}

	var intent Intent
	if err := json.Unmarshal([]byte(payload), &intent); err != nil {
		return nil, fmt.Errorf("decode redirect intent: %w", err)
	}
	return &intent, nil
}
