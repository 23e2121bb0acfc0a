package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/domain/model"
	domainRepo "github.com/nestly-app/payments-service/internal/domain/repository"
)

type rentLedgerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRentLedgerRepository creates a new rent ledger repository
func NewRentLedgerRepository(db *gorm.DB, logger *zap.Logger) domainRepo.RentLedgerRepository {
	return &rentLedgerRepository{
		db:     db,
		logger: logger,
	}
}

// MarkPaid moves a ledger entry to paid
func (r *rentLedgerRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	return r.setStatus(ctx, id, map[string]interface{}{
		"status":  model.RentLedgerStatusPaid,
		"paid_at": &paidAt,
	})
}

// MarkUnpaid reverts a ledger entry to unpaid. Used as the compensating
// transition when a provider reverses a settlement.
func (r *rentLedgerRepository) MarkUnpaid(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, map[string]interface{}{
		"status":  model.RentLedgerStatusUnpaid,
		"paid_at": nil,
	})
}

func (r *rentLedgerRepository) setStatus(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.RentLedgerEntry{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		r.logger.Error("Failed to update rent ledger entry",
			zap.String("ledger_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update rent ledger entry: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domainErrors.ErrLedgerEntryNotFound
	}

	return nil
}

// ListPaidDueInPeriod returns paid entries for the given tenants whose due
// date falls within [from, to).
func (r *rentLedgerRepository) ListPaidDueInPeriod(ctx context.Context, tenantIDs []uuid.UUID, from, to time.Time) ([]model.RentLedgerEntry, error) {
	var entries []model.RentLedgerEntry
	if len(tenantIDs) == 0 {
		return entries, nil
	}

	err := r.db.WithContext(ctx).
		Where("tenant_id IN ?", tenantIDs).
		Where("status = ?", model.RentLedgerStatusPaid).
		Where("due_date >= ? AND due_date < ?", from, to).
		Order("due_date ASC").
		Find(&entries).Error
	if err != nil {
		r.logger.Error("Failed to list paid ledger entries",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list paid ledger entries: %w", err)
	}

	return entries, nil
}
