package repository

import (
	"context"

	"github.com/nestly-app/payments-service/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
}
