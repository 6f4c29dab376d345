package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart/mocks"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/pkg/platform/sentinel"
)

type SyncServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	remote  *mocks.MockRemoteCart
	store   *Store
	service *SyncService
	ctx     context.Context
}

func (s *SyncServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.remote = mocks.NewMockRemoteCart(s.ctrl)
	s.store = NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := &fakeCatalog{products: map[int64]shopapi.Product{
		1: {ProductID: 1, Name: "Green Tea", Price: 12.50, Category: "Tea"},
		2: {ProductID: 2, Name: "Earl Grey", Price: 14.00, Category: "Tea"},
	}}
	s.service = NewSyncService(s.remote, NewEnricher(catalog, logger), logger)
	s.ctx = context.Background()
}

func (s *SyncServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func TestSyncServiceSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceSuite))
}

func (s *SyncServiceSuite) authed(userID int64) Shopper {
	return Shopper{UserID: userID, Authenticated: true}
}

// TestAnonymous verifies that visitor mutations never touch the backend.
func (s *SyncServiceSuite) TestAnonymous() {
	s.Run("add stays local", func() {
		s.service.Add(s.ctx, Shopper{}, s.store, 1, 2)

		s.Equal([]Line{{ProductID: 1, Quantity: 2}}, s.store.Lines())
	})

	s.Run("update and remove stay local", func() {
		s.service.Add(s.ctx, Shopper{}, s.store, 1, 2)
		s.service.Update(s.ctx, Shopper{}, s.store, 1, -1)
		s.service.Remove(s.ctx, Shopper{}, s.store, 1)

		s.Empty(s.store.Lines())
	})
}

// TestAuthenticatedWrites verifies mirroring and its best-effort failure mode.
func (s *SyncServiceSuite) TestAuthenticatedWrites() {
	s.Run("add mirrors the increment", func() {
		s.remote.EXPECT().AddCartItem(gomock.Any(), int64(7), int64(1), 2).Return(nil)

		s.service.Add(s.ctx, s.authed(7), s.store, 1, 2)

		s.Equal([]Line{{ProductID: 1, Quantity: 2}}, s.store.Lines())
	})

	s.Run("failed remote add keeps the local increment", func() {
		s.remote.EXPECT().AddCartItem(gomock.Any(), int64(7), int64(1), 1).Return(sentinel.ErrUnavailable)

		s.service.Add(s.ctx, s.authed(7), s.store, 1, 1)

		s.Equal([]Line{{ProductID: 1, Quantity: 1}}, s.store.Lines())
	})

	s.Run("update sends the delta through the add endpoint", func() {
		s.store.Add(1, 3)
		s.remote.EXPECT().AddCartItem(gomock.Any(), int64(7), int64(1), -1).Return(nil)

		s.service.Update(s.ctx, s.authed(7), s.store, 1, -1)

		s.Equal([]Line{{ProductID: 1, Quantity: 2}}, s.store.Lines())
	})
}

// TestRemove verifies the fetch-match-delete protocol.
func (s *SyncServiceSuite) TestRemove() {
	s.Run("resolves the remote line id and deletes by it", func() {
		s.store.Add(2, 1)
		s.remote.EXPECT().FetchCart(gomock.Any(), int64(7)).Return([]shopapi.RemoteCartLine{
			{CartItemID: 41, ProductID: 1, Quantity: 1},
			{CartItemID: 42, ProductID: 2, Quantity: 1},
		}, nil)
		s.remote.EXPECT().RemoveCartItem(gomock.Any(), int64(42)).Return(nil)

		s.service.Remove(s.ctx, s.authed(7), s.store, 2)

		s.Empty(s.store.Lines())
	})

	s.Run("skips the remote delete when no line matches", func() {
		s.store.Add(5, 1)
		s.remote.EXPECT().FetchCart(gomock.Any(), int64(7)).Return([]shopapi.RemoteCartLine{
			{CartItemID: 41, ProductID: 1, Quantity: 1},
		}, nil)

		s.service.Remove(s.ctx, s.authed(7), s.store, 5)

		s.Empty(s.store.Lines())
	})

	s.Run("failed fetch removes locally and stops", func() {
		s.store.Add(1, 1)
		s.remote.EXPECT().FetchCart(gomock.Any(), int64(7)).Return(nil, sentinel.ErrUnavailable)

		s.service.Remove(s.ctx, s.authed(7), s.store, 1)

		s.Empty(s.store.Lines())
	})
}

// TestHandleLogin verifies the discard-not-merge pull.
func (s *SyncServiceSuite) TestHandleLogin() {
	s.Run("overwrites the anonymous cart with the persisted one", func() {
		s.store.Add(1, 2)
		s.remote.EXPECT().FetchCart(gomock.Any(), int64(7)).Return([]shopapi.RemoteCartLine{
			{CartItemID: 10, ProductID: 2, Quantity: 1},
		}, nil)

		items, err := s.service.HandleLogin(s.ctx, s.authed(7), s.store)

		s.Require().NoError(err)
		s.Equal([]Line{{ProductID: 2, Quantity: 1}}, s.store.Lines())
		s.Require().Len(items, 1)
		s.Equal("Earl Grey", items[0].Name)
		s.Equal(1, items[0].Quantity)
	})

	s.Run("an empty persisted cart empties the local one", func() {
		s.store.Add(1, 2)
		s.remote.EXPECT().FetchCart(gomock.Any(), int64(7)).Return([]shopapi.RemoteCartLine{}, nil)

		items, err := s.service.HandleLogin(s.ctx, s.authed(7), s.store)

		s.Require().NoError(err)
		s.Empty(s.store.Lines())
		s.Empty(items)
	})

	s.Run("failed pull leaves the local cart untouched", func() {
		s.store.Add(1, 2)
		s.remote.EXPECT().FetchCart(gomock.Any(), int64(7)).Return(nil, sentinel.ErrUnavailable)

		_, err := s.service.HandleLogin(s.ctx, s.authed(7), s.store)

		s.Require().ErrorIs(err, sentinel.ErrUnavailable)
		s.Equal([]Line{{ProductID: 1, Quantity: 2}}, s.store.Lines())
	})
}
