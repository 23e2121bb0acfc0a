package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nestly-app/payments-service/internal/domain/model"
	domainRepo "github.com/nestly-app/payments-service/internal/domain/repository"
)

type userProfileRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserProfileRepository creates a new user profile repository
func NewUserProfileRepository(db *gorm.DB, logger *zap.Logger) domainRepo.UserProfileRepository {
	return &userProfileRepository{
		db:     db,
		logger: logger,
	}
}

// SetIdentityVerified flags a user's profile as identity-verified
func (r *userProfileRepository) SetIdentityVerified(ctx context.Context, userID uuid.UUID, verifiedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"identity_verified":    true,
			"identity_verified_at": &verifiedAt,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("Failed to set identity verified flag",
			zap.String("user_id", userID.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to set identity verified flag: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("user profile not found: %s", userID)
	}

	return nil
}

// ListWithReportingConsent returns profiles that opted into credit reporting
func (r *userProfileRepository) ListWithReportingConsent(ctx context.Context) ([]model.UserProfile, error) {
	var profiles []model.UserProfile

	err := r.db.WithContext(ctx).
		Where("credit_reporting_consent = ?", true).
		Find(&profiles).Error
	if err != nil {
		r.logger.Error("Failed to list consented profiles", zap.Error(err))
		return nil, fmt.Errorf("failed to list consented profiles: %w", err)
	}

	return profiles, nil
}
