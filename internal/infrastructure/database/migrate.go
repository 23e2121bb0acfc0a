package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nestly-app/payments-service/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.ProcessedWebhookEvent{},
		&model.Payment{},
		&model.RentLedgerEntry{},
		&model.LandlordWallet{},
		&model.VerificationRecord{},
		&model.Notification{},
		&model.ReportingBatch{},
		&model.ReportingEntry{},
		&model.UserProfile{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomTypes creates the PostgreSQL enum types the models reference
func createCustomTypes(db *gorm.DB) error {
	types := map[string]string{
		"payment_status":         `CREATE TYPE payment_status AS ENUM ('initiated', 'processing', 'succeeded', 'failed')`,
		"rent_ledger_status":     `CREATE TYPE rent_ledger_status AS ENUM ('unpaid', 'paid')`,
		"onboarding_status":      `CREATE TYPE onboarding_status AS ENUM ('onboarding', 'completed', 'restricted')`,
		"verification_status":    `CREATE TYPE verification_status AS ENUM ('pending', 'verified', 'rejected', 'cancelled', 'expired')`,
		"reporting_batch_status": `CREATE TYPE reporting_batch_status AS ENUM ('processing', 'completed')`,
	}

	for name, createSQL := range types {
		var exists bool
		db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = ?)`, name).Scan(&exists)
		if !exists {
			if err := db.Exec(createSQL).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// createCustomIndexes creates indexes GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// Unread-notification lookups back the SPA's badge counter
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications (user_id, created_at) WHERE is_read = false`).Error; err != nil {
		return err
	}

	// One batch per reporting period
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_completed_batch_per_period ON reporting_batches (reporting_period) WHERE status = 'completed'`).Error; err != nil {
		return err
	}

	return nil
}
