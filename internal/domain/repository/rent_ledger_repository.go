package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nestly-app/payments-service/internal/domain/model"
)

// RentLedgerRepository flips ledger rows between unpaid and paid. Both
// transitions are fixed-value writes so replayed deliveries are harmless.
type RentLedgerRepository interface {
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	MarkUnpaid(ctx context.Context, id string) error
	ListPaidDueInPeriod(ctx context.Context, tenantIDs []uuid.UUID, from, to time.Time) ([]model.RentLedgerEntry, error)
}
