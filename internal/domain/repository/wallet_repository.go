package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nestly-app/payments-service/internal/domain/model"
)

// WalletRepository mutates landlord balances. All arithmetic happens at the
// store level (increment expressions, never read-modify-write) so concurrent
// webhook deliveries for the same landlord cannot lose an update.
type WalletRepository interface {
	GetByLandlordID(ctx context.Context, landlordID uuid.UUID) (*model.LandlordWallet, error)
	AddPending(ctx context.Context, landlordID uuid.UUID, amount decimal.Decimal) error
	RecordPayout(ctx context.Context, stripeAccountID string, amount decimal.Decimal) error
	SetOnboardingStatus(ctx context.Context, stripeAccountID string, status model.OnboardingStatus) error
}
