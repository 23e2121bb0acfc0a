package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/domain/model"
)

// MockReportingRepository is a mock implementation of ReportingRepository
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) CreateBatch(ctx context.Context, batch *model.ReportingBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockReportingRepository) CreateEntries(ctx context.Context, entries []model.ReportingEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockReportingRepository) CompleteBatch(ctx context.Context, batchID int64, recordCount int) error {
	args := m.Called(ctx, batchID, recordCount)
	return args.Error(0)
}

type batchMocks struct {
	reporting *MockReportingRepository
	profiles  *MockUserProfileRepository
	ledger    *MockRentLedgerRepository
}

func newTestBatchService() (*ReportBatchService, *batchMocks) {
	mocks := &batchMocks{
		reporting: new(MockReportingRepository),
		profiles:  new(MockUserProfileRepository),
		ledger:    new(MockRentLedgerRepository),
	}
	service := NewReportBatchService(mocks.reporting, mocks.profiles, mocks.ledger, zap.NewNop())
	return service, mocks
}

func TestReportBatchService_GeneratesEntriesForConsentedTenants(t *testing.T) {
	service, mocks := newTestBatchService()
	ctx := context.Background()

	tenantID := uuid.New()
	leaseID := uuid.New()
	paidAt := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

	mocks.reporting.On("CreateBatch", ctx, mock.MatchedBy(func(b *model.ReportingBatch) bool {
		return b.ReportingPeriod == "2024-01" && b.Status == model.ReportingBatchStatusProcessing
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.ReportingBatch).ID = 7
	}).Return(nil)
	mocks.profiles.On("ListWithReportingConsent", ctx).Return([]model.UserProfile{
		{UserID: tenantID, CreditReportingConsent: true},
	}, nil)
	mocks.ledger.On("ListPaidDueInPeriod", ctx, []uuid.UUID{tenantID},
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
		Return([]model.RentLedgerEntry{
			{
				ID:       "r1",
				TenantID: tenantID,
				LeaseID:  leaseID,
				Amount:   decimal.RequireFromString("1500.00"),
				DueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				PaidAt:   &paidAt,
				Status:   model.RentLedgerStatusPaid,
			},
		}, nil)
	mocks.reporting.On("CreateEntries", ctx, mock.MatchedBy(func(entries []model.ReportingEntry) bool {
		if len(entries) != 1 {
			return false
		}
		payload := entries[0].Payload
		return entries[0].BatchID == 7 &&
			payload["amount"] == "1500.00" &&
			payload["rent_ledger_id"] == "r1" &&
			payload["reporting_period"] == "2024-01" &&
			payload["disclaimer"] == reportingDisclaimer
	})).Return(nil)
	mocks.reporting.On("CompleteBatch", ctx, int64(7), 1).Return(nil)

	result, err := service.Run(ctx, "2024-01")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), result.BatchID)
	assert.Equal(t, "2024-01", result.Period)
	assert.Equal(t, 1, result.RecordCount)
	mocks.reporting.AssertExpectations(t)
	mocks.ledger.AssertExpectations(t)
}

func TestReportBatchService_NoConsentedUsersCompletesEmptyBatch(t *testing.T) {
	service, mocks := newTestBatchService()
	ctx := context.Background()

	mocks.reporting.On("CreateBatch", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.ReportingBatch).ID = 12
	}).Return(nil)
	mocks.profiles.On("ListWithReportingConsent", ctx).Return([]model.UserProfile{}, nil)
	mocks.reporting.On("CompleteBatch", ctx, int64(12), 0).Return(nil)

	result, err := service.Run(ctx, "2024-03")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.RecordCount)
	assert.Equal(t, "no consented users found", result.Message)
	mocks.ledger.AssertNotCalled(t, "ListPaidDueInPeriod",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mocks.reporting.AssertExpectations(t)
}

func TestReportBatchService_InvalidPeriodRejected(t *testing.T) {
	service, mocks := newTestBatchService()

	result, err := service.Run(context.Background(), "January 2024")

	assert.ErrorIs(t, err, domainErrors.ErrInvalidReportingPeriod)
	assert.Nil(t, result)
	mocks.reporting.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestReportBatchService_EmptyPeriodDefaultsToPreviousMonth(t *testing.T) {
	service, mocks := newTestBatchService()
	ctx := context.Background()

	service.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}

	mocks.reporting.On("CreateBatch", ctx, mock.MatchedBy(func(b *model.ReportingBatch) bool {
		return b.ReportingPeriod == "2024-02"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.ReportingBatch).ID = 3
	}).Return(nil)
	mocks.profiles.On("ListWithReportingConsent", ctx).Return([]model.UserProfile{}, nil)
	mocks.reporting.On("CompleteBatch", ctx, int64(3), 0).Return(nil)

	result, err := service.Run(ctx, "")

	assert.NoError(t, err)
	assert.Equal(t, "2024-02", result.Period)
	mocks.reporting.AssertExpectations(t)
}
