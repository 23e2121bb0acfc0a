package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/domain/model"
	domainRepo "github.com/nestly-app/payments-service/internal/domain/repository"
)

type walletRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWalletRepository creates a new landlord wallet repository
func NewWalletRepository(db *gorm.DB, logger *zap.Logger) domainRepo.WalletRepository {
	return &walletRepository{
		db:     db,
		logger: logger,
	}
}

// GetByLandlordID retrieves a wallet by landlord id
func (r *walletRepository) GetByLandlordID(ctx context.Context, landlordID uuid.UUID) (*model.LandlordWallet, error) {
	var wallet model.LandlordWallet

	err := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrWalletNotFound
		}
		r.logger.Error("Failed to get wallet",
			zap.String("landlord_id", landlordID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return &wallet, nil
}

// AddPending increments the landlord's pending balance. The increment runs
// inside the upsert so two concurrent deliveries for the same landlord both
// land; a missing wallet row is created on first use.
func (r *walletRepository) AddPending(ctx context.Context, landlordID uuid.UUID, amount decimal.Decimal) error {
	wallet := &model.LandlordWallet{
		LandlordID:     landlordID,
		PendingBalance: amount,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "landlord_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"pending_balance": gorm.Expr("landlord_wallets.pending_balance + ?", amount),
				"updated_at":      time.Now(),
			}),
		}).
		Create(wallet).Error
	if err != nil {
		r.logger.Error("Failed to add pending balance",
			zap.String("landlord_id", landlordID.String()),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return fmt.Errorf("failed to add pending balance: %w", err)
	}

	return nil
}

// RecordPayout atomically moves a paid-out amount from available to paid-out,
// keyed on the landlord's Connect account id.
func (r *walletRepository) RecordPayout(ctx context.Context, stripeAccountID string, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&model.LandlordWallet{}).
		Where("stripe_account_id = ?", stripeAccountID).
		Updates(map[string]interface{}{
			"available_balance": gorm.Expr("available_balance - ?", amount),
			"paid_out_balance":  gorm.Expr("paid_out_balance + ?", amount),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("Failed to record payout",
			zap.String("stripe_account_id", stripeAccountID),
			zap.String("amount", amount.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to record payout: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domainErrors.ErrWalletNotFound
	}

	return nil
}

// SetOnboardingStatus stores the onboarding state derived from a Connect
// account.updated event.
func (r *walletRepository) SetOnboardingStatus(ctx context.Context, stripeAccountID string, status model.OnboardingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.LandlordWallet{}).
		Where("stripe_account_id = ?", stripeAccountID).
		Updates(map[string]interface{}{
			"onboarding_status": status,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("Failed to set onboarding status",
			zap.String("stripe_account_id", stripeAccountID),
			zap.String("status", string(status)),
			zap.Error(result.Error))
		return fmt.Errorf("failed to set onboarding status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domainErrors.ErrWalletNotFound
	}

	return nil
}
