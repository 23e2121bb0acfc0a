package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nestly-app/payments-service/internal/domain/model"
	domainRepo "github.com/nestly-app/payments-service/internal/domain/repository"
)

type reportingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewReportingRepository creates a new reporting repository
func NewReportingRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ReportingRepository {
	return &reportingRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch inserts a new batch in processing state
func (r *reportingRepository) CreateBatch(ctx context.Context, batch *model.ReportingBatch) error {
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		r.logger.Error("Failed to create reporting batch",
			zap.String("period", batch.ReportingPeriod),
			zap.Error(err))
		return fmt.Errorf("failed to create reporting batch: %w", err)
	}

	return nil
}

// CreateEntries bulk-inserts batch entries
func (r *reportingRepository) CreateEntries(ctx context.Context, entries []model.ReportingEntry) error {
	if len(entries) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).CreateInBatches(entries, 100).Error; err != nil {
		r.logger.Error("Failed to create reporting entries",
			zap.Int("count", len(entries)),
			zap.Error(err))
		return fmt.Errorf("failed to create reporting entries: %w", err)
	}

	return nil
}

// CompleteBatch flips a batch to completed with its final record count
func (r *reportingRepository) CompleteBatch(ctx context.Context, batchID int64, recordCount int) error {
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.ReportingBatch{}).
		Where("id = ?", batchID).
		Updates(map[string]interface{}{
			"status":       model.ReportingBatchStatusCompleted,
			"record_count": recordCount,
			"completed_at": &now,
		})
	if result.Error != nil {
		r.logger.Error("Failed to complete reporting batch",
			zap.Int64("batch_id", batchID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to complete reporting batch: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("reporting batch not found: %d", batchID)
	}

	return nil
}
