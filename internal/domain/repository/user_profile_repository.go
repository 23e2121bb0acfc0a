package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nestly-app/payments-service/internal/domain/model"
)

type UserProfileRepository interface {
	SetIdentityVerified(ctx context.Context, userID uuid.UUID, verifiedAt time.Time) error
	ListWithReportingConsent(ctx context.Context) ([]model.UserProfile, error)
}
