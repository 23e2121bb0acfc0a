package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nestly-app/payments-service/internal/domain/model"
	domainRepo "github.com/nestly-app/payments-service/internal/domain/repository"
)

type processedEventRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProcessedEventRepository creates the idempotency ledger repository
func NewProcessedEventRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ProcessedEventRepository {
	return &processedEventRepository{
		db:     db,
		logger: logger,
	}
}

// Exists reports whether an event id has already been processed
func (r *processedEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProcessedWebhookEvent{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to check processed event",
			zap.String("event_id", eventID),
			zap.Error(err))
		return false, fmt.Errorf("failed to check processed event: %w", err)
	}

	return count > 0, nil
}

// Record writes the ledger row for a processed event. A concurrent delivery
// of the same event races on the unique index; the losing insert is a no-op,
// not an error.
func (r *processedEventRepository) Record(ctx context.Context, eventID, eventType string, source model.EventSource) error {
	event := &model.ProcessedWebhookEvent{
		EventID:   eventID,
		EventType: eventType,
		Source:    source,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event).Error
	if err != nil {
		r.logger.Error("Failed to record processed event",
			zap.String("event_id", eventID),
			zap.String("event_type", eventType),
			zap.Error(err))
		return fmt.Errorf("failed to record processed event: %w", err)
	}

	return nil
}
