package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/domain/model"
	"github.com/nestly-app/payments-service/internal/domain/repository"
)

const reportingPeriodLayout = "2006-01"

// Disclaimer stamped on every generated payload until bureau submission is
// turned on.
const reportingDisclaimer = "Generated for tenant records only; not submitted to a credit bureau."

// BatchResult summarizes one credit-report batch run.
type BatchResult struct {
	BatchID     int64  `json:"batch_id"`
	Period      string `json:"period"`
	RecordCount int    `json:"record_count"`
	Message     string `json:"message"`
}

// ReportBatchService runs the scheduled credit-report generation job:
// resolve the reporting period, snapshot one immutable payload per paid
// ledger row of each consented tenant, and flip the batch to completed.
type ReportBatchService struct {
	reporting repository.ReportingRepository
	profiles  repository.UserProfileRepository
	ledger    repository.RentLedgerRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportBatchService creates a new report batch service
func NewReportBatchService(
	reporting repository.ReportingRepository,
	profiles repository.UserProfileRepository,
	ledger repository.RentLedgerRepository,
	logger *zap.Logger,
) *ReportBatchService {
	return &ReportBatchService{
		reporting: reporting,
		profiles:  profiles,
		ledger:    ledger,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one batch for the given period ("YYYY-MM"), defaulting to the
// previous calendar month. An empty eligible set is not an error: the batch
// still completes with a zero record count.
func (s *ReportBatchService) Run(ctx context.Context, period string) (*BatchResult, error) {
	periodStart, err := s.resolvePeriod(period)
	if err != nil {
		return nil, err
	}
	periodEnd := periodStart.AddDate(0, 1, 0)
	periodLabel := periodStart.Format(reportingPeriodLayout)

	batch := &model.ReportingBatch{
		ReportingPeriod: periodLabel,
		Status:          model.ReportingBatchStatusProcessing,
	}
	if err := s.reporting.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("Reporting batch started",
		zap.Int64("batch_id", batch.ID),
		zap.String("period", periodLabel))

	profiles, err := s.profiles.ListWithReportingConsent(ctx)
	if err != nil {
		return nil, err
	}

	if len(profiles) == 0 {
		if err := s.reporting.CompleteBatch(ctx, batch.ID, 0); err != nil {
			return nil, err
		}
		s.logger.Info("Reporting batch completed with no consented users",
			zap.Int64("batch_id", batch.ID))
		return &BatchResult{
			BatchID: batch.ID,
			Period:  periodLabel,
			Message: "no consented users found",
		}, nil
	}

	tenantIDs := make([]uuid.UUID, 0, len(profiles))
	for _, profile := range profiles {
		tenantIDs = append(tenantIDs, profile.UserID)
	}

	rows, err := s.ledger.ListPaidDueInPeriod(ctx, tenantIDs, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	entries := make([]model.ReportingEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.ReportingEntry{
			BatchID:  batch.ID,
			TenantID: row.TenantID,
			LeaseID:  row.LeaseID,
			Payload: model.JSONB{
				"tenant_id":        row.TenantID.String(),
				"lease_id":         row.LeaseID.String(),
				"rent_ledger_id":   row.ID,
				"amount":           row.Amount.StringFixed(2),
				"due_date":         row.DueDate.Format(time.RFC3339),
				"paid_at":          formatOptionalTime(row.PaidAt),
				"reporting_period": periodLabel,
				"disclaimer":       reportingDisclaimer,
			},
		})
	}

	if err := s.reporting.CreateEntries(ctx, entries); err != nil {
		return nil, err
	}

	if err := s.reporting.CompleteBatch(ctx, batch.ID, len(entries)); err != nil {
		return nil, err
	}

	s.logger.Info("Reporting batch completed",
		zap.Int64("batch_id", batch.ID),
		zap.String("period", periodLabel),
		zap.Int("record_count", len(entries)))

	return &BatchResult{
		BatchID:     batch.ID,
		Period:      periodLabel,
		RecordCount: len(entries),
		Message:     "batch completed",
	}, nil
}

func (s *ReportBatchService) resolvePeriod(period string) (time.Time, error) {
	if period == "" {
		now := s.now()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfMonth.AddDate(0, -1, 0), nil
	}

	start, err := time.Parse(reportingPeriodLayout, period)
	if err != nil {
		return time.Time{}, domainErrors.ErrInvalidReportingPeriod
	}
	return start, nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
