package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/pkg/platform/sentinel"
)

type SessionSuite struct {
	suite.Suite
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

// TestTransitions verifies the anonymous/authenticated state machine.
func (s *SessionSuite) TestTransitions() {
	s.Run("starts anonymous", func() {
		sess := New()

		_, ok := sess.User()
		s.False(ok)
		s.Equal(cart.Shopper{}, sess.Shopper())
	})

	s.Run("login authenticates the session", func() {
		sess := New()
		s.Require().NoError(sess.Login(User{ID: 7, Name: "Demo", Email: "demo@example.com"}))

		user, ok := sess.User()
		s.Require().True(ok)
		s.Equal(int64(7), user.ID)
		s.Equal(cart.Shopper{UserID: 7, Authenticated: true}, sess.Shopper())
	})

	s.Run("rejects login on an authenticated session", func() {
		sess := New()
		s.Require().NoError(sess.Login(User{ID: 7}))

		err := sess.Login(User{ID: 8})
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		user, _ := sess.User()
		s.Equal(int64(7), user.ID)
	})

	s.Run("logout resets to anonymous and allows a fresh login", func() {
		sess := New()
		s.Require().NoError(sess.Login(User{ID: 7}))
		sess.Logout()

		_, ok := sess.User()
		s.False(ok)
		s.NoError(sess.Login(User{ID: 8}))
	})
}

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry()
}

func (s *RegistrySuite) SetupSubTest() {
	s.SetupTest()
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

// TestLifecycle verifies session creation and lookup.
func (s *RegistrySuite) TestLifecycle() {
	s.Run("create yields an addressable anonymous session", func() {
		runtime := s.registry.Create()

		found, err := s.registry.Get(runtime.ID)
		s.Require().NoError(err)
		s.Same(runtime, found)
		s.Empty(found.Cart.Lines())
		_, ok := found.Session.User()
		s.False(ok)
	})

	s.Run("unknown ids return ErrNotFound", func() {
		_, err := s.registry.Get(uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("sessions are isolated from each other", func() {
		a := s.registry.Create()
		b := s.registry.Create()

		a.Cart.Add(1, 2)

		s.Empty(b.Cart.Lines())
	})
}

// TestEvictIdle verifies memory does not grow with abandoned sessions.
func (s *RegistrySuite) TestEvictIdle() {
	s.Run("keeps sessions within the idle window", func() {
		runtime := s.registry.Create()

		s.Zero(s.registry.EvictIdle(time.Hour))

		_, err := s.registry.Get(runtime.ID)
		s.NoError(err)
	})

	s.Run("drops sessions idle past the window", func() {
		runtime := s.registry.Create()
		time.Sleep(5 * time.Millisecond)

		s.Equal(1, s.registry.EvictIdle(time.Millisecond))

		_, err := s.registry.Get(runtime.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("a lookup counts as activity", func() {
		runtime := s.registry.Create()
		time.Sleep(5 * time.Millisecond)

		_, err := s.registry.Get(runtime.ID)
		s.Require().NoError(err)

		s.Zero(s.registry.EvictIdle(4 * time.Millisecond))
	})
}

// TestCartOpenSignal verifies the drawer flag wiring.
func (s *RegistrySuite) TestCartOpenSignal() {
	runtime := s.registry.Create()
	s.False(runtime.CartOpen())

	runtime.Cart.Add(1, 1)
	s.True(runtime.CartOpen())

	runtime.CloseCart()
	s.False(runtime.CartOpen())

	runtime.Cart.Add(1, 1)
	s.True(runtime.CartOpen())
}
