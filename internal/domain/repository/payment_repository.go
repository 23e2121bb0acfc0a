package repository

import (
	"context"
	"time"

	"github.com/nestly-app/payments-service/internal/domain/model"
)

// PaymentRepository mutates payment records keyed on the provider's payment
// intent id. Payments are created by the initiation flow, never here; every
// mutation sets status to a fixed value except MarkFailed, which also bumps
// the retry counter.
type PaymentRepository interface {
	GetByIntentID(ctx context.Context, intentID string) (*model.Payment, error)
	MarkInitiated(ctx context.Context, intentID string) error
	MarkProcessing(ctx context.Context, intentID string) error
	MarkSucceeded(ctx context.Context, intentID string, paidDate time.Time, metadata model.JSONB) error
	MarkFailed(ctx context.Context, intentID, reason, code string, retriedAt time.Time, metadata model.JSONB) error
}
