package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/domain/model"
	domainRepo "github.com/nestly-app/payments-service/internal/domain/repository"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

// GetByIntentID retrieves a payment by its provider payment intent id
func (r *paymentRepository) GetByIntentID(ctx context.Context, intentID string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", intentID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		r.logger.Error("Failed to get payment",
			zap.String("payment_intent_id", intentID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// MarkInitiated sets the payment status to initiated
func (r *paymentRepository) MarkInitiated(ctx context.Context, intentID string) error {
	return r.update(ctx, intentID, map[string]interface{}{
		"status": model.PaymentStatusInitiated,
	})
}

// MarkProcessing sets the payment status to processing
func (r *paymentRepository) MarkProcessing(ctx context.Context, intentID string) error {
	return r.update(ctx, intentID, map[string]interface{}{
		"status": model.PaymentStatusProcessing,
	})
}

// MarkSucceeded sets the payment status to succeeded and stamps the paid date
func (r *paymentRepository) MarkSucceeded(ctx context.Context, intentID string, paidDate time.Time, metadata model.JSONB) error {
	return r.update(ctx, intentID, map[string]interface{}{
		"status":           model.PaymentStatusSucceeded,
		"paid_date":        &paidDate,
		"payment_metadata": metadata,
	})
}

// MarkFailed sets the payment status to failed, stores the provider's failure
// details and bumps the retry counter. The counter is the one intentionally
// non-idempotent write in this repository.
func (r *paymentRepository) MarkFailed(ctx context.Context, intentID, reason, code string, retriedAt time.Time, metadata model.JSONB) error {
	return r.update(ctx, intentID, map[string]interface{}{
		"status":           model.PaymentStatusFailed,
		"failure_reason":   reason,
		"failure_code":     code,
		"retry_count":      gorm.Expr("retry_count + 1"),
		"last_retry_at":    &retriedAt,
		"payment_metadata": metadata,
	})
}

func (r *paymentRepository) update(ctx context.Context, intentID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("payment_intent_id = ?", intentID).
		Updates(updates)
	if result.Error != nil {
		r.logger.Error("Failed to update payment",
			zap.String("payment_intent_id", intentID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domainErrors.ErrPaymentNotFound
	}

	return nil
}
