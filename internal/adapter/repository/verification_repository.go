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

type verificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.VerificationRepository {
	return &verificationRepository{
		db:     db,
		logger: logger,
	}
}

// GetByReferenceID retrieves a verification record by its provider reference id
func (r *verificationRepository) GetByReferenceID(ctx context.Context, referenceID string) (*model.VerificationRecord, error) {
	var record model.VerificationRecord

	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrVerificationNotFound
		}
		r.logger.Error("Failed to get verification record",
			zap.String("reference_id", referenceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get verification record: %w", err)
	}

	return &record, nil
}

// UpdateStatus resolves a verification record to a terminal status
func (r *verificationRepository) UpdateStatus(ctx context.Context, referenceID string, status model.VerificationStatus, rejectionReason string, data model.JSONB) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if rejectionReason != "" {
		updates["rejection_reason"] = rejectionReason
	}
	if data != nil {
		updates["verification_data"] = data
	}

	result := r.db.WithContext(ctx).
		Model(&model.VerificationRecord{}).
		Where("reference_id = ?", referenceID).
		Updates(updates)
	if result.Error != nil {
		r.logger.Error("Failed to update verification record",
			zap.String("reference_id", referenceID),
			zap.String("status", string(status)),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update verification record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domainErrors.ErrVerificationNotFound
	}

	return nil
}
