package repository

import (
	"context"

	"github.com/nestly-app/payments-service/internal/domain/model"
)

// VerificationRepository resolves KYC verification records keyed on the
// provider-assigned reference id.
type VerificationRepository interface {
	GetByReferenceID(ctx context.Context, referenceID string) (*model.VerificationRecord, error)
	UpdateStatus(ctx context.Context, referenceID string, status model.VerificationStatus, rejectionReason string, data model.JSONB) error
}
