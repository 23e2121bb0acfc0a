package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/nestly-app/payments-service/internal/domain/model"
)

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("creates notification for valid user", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())
		userID := uuid.New()

		repo.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == userID &&
				n.Type == model.NotificationTypePayment &&
				n.Title == "Payment successful" &&
				!n.IsRead
		})).Return(nil)

		service.Notify(ctx, userID.String(), model.NotificationTypePayment,
			"Payment successful", "Your rent payment was received.", nil)

		repo.AssertExpectations(t)
	})

	t.Run("empty user id is a no-op", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		service.Notify(ctx, "", model.NotificationTypePayment, "Title", "Message", nil)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed user id is skipped", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		service.Notify(ctx, "not-a-uuid", model.NotificationTypeVerification, "Title", "Message", nil)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository failure is swallowed", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		service.Notify(ctx, uuid.NewString(), model.NotificationTypePayout, "Title", "Message", nil)

		repo.AssertExpectations(t)
	})
}
