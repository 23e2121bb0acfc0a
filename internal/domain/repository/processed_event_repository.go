package repository

import (
	"context"

	"github.com/nestly-app/payments-service/internal/domain/model"
)

// ProcessedEventRepository is the idempotency ledger. Exists is checked
// before dispatch; Record is written after a successful dispatch, so a crash
// mid-handler causes a replayed (not missed) delivery.
type ProcessedEventRepository interface {
	Exists(ctx context.Context, eventID string) (bool, error)
	Record(ctx context.Context, eventID, eventType string, source model.EventSource) error
}
