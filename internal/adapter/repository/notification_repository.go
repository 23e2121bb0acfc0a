package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nestly-app/payments-service/internal/domain/model"
	domainRepo "github.com/nestly-app/payments-service/internal/domain/repository"
)

type notificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.NotificationRepository {
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a notification row
func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		r.logger.Error("Failed to create notification",
			zap.String("user_id", notification.UserID.String()),
			zap.String("type", string(notification.Type)),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}
