package repository

import (
	"context"

	"github.com/nestly-app/payments-service/internal/domain/model"
)

// ReportingRepository persists credit-report batches and their entries.
// Batches flip from processing to completed exactly once and are immutable
// afterwards.
type ReportingRepository interface {
	CreateBatch(ctx context.Context, batch *model.ReportingBatch) error
	CreateEntries(ctx context.Context, entries []model.ReportingEntry) error
	CompleteBatch(ctx context.Context, batchID int64, recordCount int) error
}
