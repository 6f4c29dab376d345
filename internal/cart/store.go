// Package cart holds the in-memory cart for one browsing session and the
// machinery that keeps it aligned with the remote persisted cart: the
// enricher that joins lines against the catalog and the sync service that
// mirrors mutations while the session is authenticated.
package cart

import "sync"

// Store is the authoritative in-memory cart for one browsing session. Lines
// keep insertion order and are unique per product; a repeated add increments
// the existing line. All mutations funnel through the methods here, none of
// which return errors: mutating an absent line is a benign no-op because the
// UI may race a remove against an already-completed removal.
type Store struct {
	mu     sync.Mutex
	lines  []Line
	onOpen func()
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithOpenSignal registers a callback fired whenever an add should make the
// cart visible (the drawer-open side effect).
func WithOpenSignal(fn func()) StoreOption {
	return func(s *Store) { s.onOpen = fn }
}

// NewStore returns an empty cart.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add puts quantity units of a product in the cart, incrementing the existing
// line if one exists and appending a new line otherwise. Always signals that
// the cart should become visible.
func (s *Store) Add(productID int64, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, Line{ProductID: productID, Quantity: quantity})
	}
	onOpen := s.onOpen
	s.mu.Unlock()

	if onOpen != nil {
		onOpen()
	}
}

// Update applies a positive or negative delta to the matching line. A line
// whose quantity would drop to zero or below is removed. Unknown products are
// ignored.
func (s *Store) Update(productID int64, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return
	}
}

// Remove deletes the matching line if present.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Replace swaps the entire cart contents, preserving the given order. Used by
// the post-authentication pull, which overwrites rather than merges.
func (s *Store) Replace(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.Quantity > 0 {
			s.lines = append(s.lines, line)
		}
	}
}

// Clear empties the cart. Invoked on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Lines returns a snapshot of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Line, len(s.lines))
	copy(snapshot, s.lines)
	return snapshot
}

// Count returns the total quantity across all lines, for the badge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}
