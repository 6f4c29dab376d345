// Package session models the browsing session: its identity state, the
// registry of live sessions held by the gateway, and the signed tokens that
// address them.
package session

import (
	"sync"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/pkg/platform/sentinel"
)

// User is the resolved identity of an authenticated session.
type User struct {
	ID    int64  `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is exactly one of anonymous or authenticated. The transition only
// goes forward: anonymous sessions authenticate, and nothing downgrades an
// authenticated session except an explicit logout, which resets it to
// anonymous.
type Session struct {
	mu   sync.Mutex
	user *User
}

// New returns an anonymous session.
func New() *Session {
	return &Session{}
}

// Login moves the session to authenticated. A second login conflicts with
// the identity the session already holds.
func (s *Session) Login(user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		return sentinel.ErrConflict
	}
	s.user = &user
	return nil
}

// Logout resets the session to anonymous.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// User returns the authenticated identity, if any.
func (s *Session) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Shopper returns the persistence-gating view of this session.
func (s *Session) Shopper() cart.Shopper {
	user, ok := s.User()
	if !ok {
		return cart.Shopper{}
	}
	return cart.Shopper{UserID: user.ID, Authenticated: true}
}
