package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nestly-app/payments-service/internal/domain/model"
	"github.com/nestly-app/payments-service/internal/domain/repository"
)

// NotificationService writes user-facing notifications on behalf of the
// event handlers. It never fails the caller: a write error is logged and
// swallowed, and an empty user id is a silent no-op, since some events do
// not carry enough metadata to know who to notify.
type NotificationService struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger,
	}
}

// Notify creates a notification for the given user
func (s *NotificationService) Notify(ctx context.Context, userID string, nType model.NotificationType, title, message string, metadata model.JSONB) {
	if userID == "" {
		return
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		s.logger.Warn("Skipping notification for malformed user id",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}

	notification := &model.Notification{
		UserID:   uid,
		Type:     nType,
		Title:    title,
		Message:  message,
		IsRead:   false,
		Metadata: metadata,
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error("Failed to dispatch notification",
			zap.String("user_id", userID),
			zap.String("type", string(nType)),
			zap.Error(err))
	}
}
