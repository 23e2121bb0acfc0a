package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/domain/model"
)

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByLandlordID(ctx context.Context, landlordID uuid.UUID) (*model.LandlordWallet, error) {
	args := m.Called(ctx, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LandlordWallet), args.Error(1)
}

func (m *MockWalletRepository) AddPending(ctx context.Context, landlordID uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, landlordID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) RecordPayout(ctx context.Context, stripeAccountID string, amount decimal.Decimal) error {
	args := m.Called(ctx, stripeAccountID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) SetOnboardingStatus(ctx context.Context, stripeAccountID string, status model.OnboardingStatus) error {
	args := m.Called(ctx, stripeAccountID, status)
	return args.Error(0)
}

func TestWalletHandler_GetWallet(t *testing.T) {
	landlordID := uuid.New()

	t.Run("returns the caller's wallet", func(t *testing.T) {
		wallets := new(MockWalletRepository)
		handler := NewWalletHandler(zap.NewNop(), wallets)

		wallets.On("GetByLandlordID", mock.Anything, landlordID).Return(&model.LandlordWallet{
			LandlordID:     landlordID,
			PendingBalance: decimal.RequireFromString("1500.00"),
		}, nil)

		c, rec := authenticatedGet(landlordID, "/api/v1/wallet", "", "")

		assert.NoError(t, handler.GetWallet(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), landlordID.String())
	})

	t.Run("missing wallet is not found", func(t *testing.T) {
		wallets := new(MockWalletRepository)
		handler := NewWalletHandler(zap.NewNop(), wallets)

		wallets.On("GetByLandlordID", mock.Anything, landlordID).
			Return(nil, domainErrors.ErrWalletNotFound)

		c, rec := authenticatedGet(landlordID, "/api/v1/wallet", "", "")

		assert.NoError(t, handler.GetWallet(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		wallets := new(MockWalletRepository)
		handler := NewWalletHandler(zap.NewNop(), wallets)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler.GetWallet(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		wallets.AssertNotCalled(t, "GetByLandlordID", mock.Anything, mock.Anything)
	})
}
