package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/pkg/platform/sentinel"
)

// Runtime bundles the live state of one browsing session: its identity and
// its in-memory cart. The cart's open-signal is wired to a per-session flag
// so the client can show the drawer after an add.
type Runtime struct {
	ID      uuid.UUID
	Session *Session
	Cart    *cart.Store

	cartOpen atomic.Bool
	lastSeen atomic.Int64
}

func newRuntime(id uuid.UUID) *Runtime {
	r := &Runtime{
		ID:      id,
		Session: New(),
	}
	r.Cart = cart.NewStore(cart.WithOpenSignal(func() {
		r.cartOpen.Store(true)
	}))
	r.touch()
	return r
}

func (r *Runtime) touch() {
	r.lastSeen.Store(time.Now().UnixNano())
}

// CartOpen reports whether the cart drawer should be visible.
func (r *Runtime) CartOpen() bool {
	return r.cartOpen.Load()
}

// CloseCart dismisses the drawer.
func (r *Runtime) CloseCart() {
	r.cartOpen.Store(false)
}

// Registry holds the live browsing sessions, keyed by session id. In-memory
// on purpose: a session's cart does not survive a gateway restart, matching
// the no-client-persistence lifecycle. Sessions idle past the token TTL are
// unaddressable anyway, so the sweeper reclaims them to bound memory.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Runtime
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Runtime)}
}

// Create starts a fresh anonymous session with an empty cart.
func (g *Registry) Create() *Runtime {
	runtime := newRuntime(uuid.New())

	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[runtime.ID] = runtime
	return runtime
}

// Get resolves a live session by id and marks it active.
func (g *Registry) Get(id uuid.UUID) (*Runtime, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if runtime, ok := g.sessions[id]; ok {
		runtime.touch()
		return runtime, nil
	}
	return nil, sentinel.ErrNotFound
}

// EvictIdle drops every session idle for longer than maxIdle and reports how
// many were removed.
func (g *Registry) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle).UnixNano()

	g.mu.Lock()
	defer g.mu.Unlock()

	evicted := 0
	for id, runtime := range g.sessions {
		if runtime.lastSeen.Load() < cutoff {
			delete(g.sessions, id)
			evicted++
		}
	}
	return evicted
}

// SweepIdle evicts idle sessions on a fixed interval until ctx is cancelled.
// Run it in its own goroutine.
func (g *Registry) SweepIdle(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.EvictIdle(maxIdle)
		}
	}
}
