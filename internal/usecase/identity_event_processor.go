package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nestly-app/payments-service/internal/domain/model"
	"github.com/nestly-app/payments-service/internal/domain/repository"
)

// Identity provider event types.
const (
	IdentityEventVerificationAccepted = "verification.accepted"
	IdentityEventVerificationDeclined = "verification.declined"
	IdentityEventRequestCancelled     = "request.cancelled"
	IdentityEventRequestTimeout       = "request.timeout"
)

// IdentityEvent is the KYC provider's webhook payload.
type IdentityEvent struct {
	ID               string                 `json:"id"`
	Type             string                 `json:"type"`
	ReferenceID      string                 `json:"reference_id"`
	VerificationData map[string]interface{} `json:"verification_data,omitempty"`
	Error            *IdentityEventError    `json:"error,omitempty"`
}

// IdentityEventError carries the provider's decline details.
type IdentityEventError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// IdentityEventProcessor maps KYC webhook events onto verification records.
// The mapping is 1:1 per event type; on acceptance the verified flag is also
// propagated to the user's profile, best-effort.
type IdentityEventProcessor struct {
	events        repository.ProcessedEventRepository
	verifications repository.VerificationRepository
	profiles      repository.UserProfileRepository
	notifier      *NotificationService
	logger        *zap.Logger
}

// NewIdentityEventProcessor creates a new identity event processor
func NewIdentityEventProcessor(
	events repository.ProcessedEventRepository,
	verifications repository.VerificationRepository,
	profiles repository.UserProfileRepository,
	notifier *NotificationService,
	logger *zap.Logger,
) *IdentityEventProcessor {
	return &IdentityEventProcessor{
		events:        events,
		verifications: verifications,
		profiles:      profiles,
		notifier:      notifier,
		logger:        logger,
	}
}

// Process applies a KYC event. Events carrying a provider id go through the
// idempotency ledger like payment events; events without one are processed
// unconditionally (the provider predates event ids).
func (p *IdentityEventProcessor) Process(ctx context.Context, event IdentityEvent) (*ProcessResult, error) {
	if event.ID != "" {
		seen, err := p.events.Exists(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		if seen {
			p.logger.Info("Skipping duplicate identity event",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.Type))
			return &ProcessResult{Duplicate: true}, nil
		}
	}

	p.logger.Info("Identity event received",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("reference_id", event.ReferenceID))

	var err error
	switch event.Type {
	case IdentityEventVerificationAccepted:
		err = p.handleAccepted(ctx, event)
	case IdentityEventVerificationDeclined:
		err = p.handleDeclined(ctx, event)
	case IdentityEventRequestCancelled:
		err = p.resolve(ctx, event, model.VerificationStatusCancelled, "")
	case IdentityEventRequestTimeout:
		err = p.resolve(ctx, event, model.VerificationStatusExpired, "")
	default:
		p.logger.Warn("Unhandled identity event type",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type))
		return &ProcessResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	if event.ID != "" {
		if err := p.events.Record(ctx, event.ID, event.Type, model.EventSourceKYC); err != nil {
			return nil, err
		}
	}

	return &ProcessResult{Handled: true}, nil
}

func (p *IdentityEventProcessor) handleAccepted(ctx context.Context, event IdentityEvent) error {
	if err := p.resolve(ctx, event, model.VerificationStatusVerified, ""); err != nil {
		return err
	}

	// Propagate the verified flag onto the profile. Best-effort: the
	// verification record is already resolved, so a failure here must not
	// make the provider redeliver.
	record, err := p.verifications.GetByReferenceID(ctx, event.ReferenceID)
	if err != nil {
		p.logger.Error("Failed to load verification record for profile update",
			zap.String("reference_id", event.ReferenceID),
			zap.Error(err))
		return nil
	}

	if err := p.profiles.SetIdentityVerified(ctx, record.UserID, time.Now()); err != nil {
		p.logger.Error("Failed to propagate verified flag to profile",
			zap.String("reference_id", event.ReferenceID),
			zap.String("user_id", record.UserID.String()),
			zap.Error(err))
		return nil
	}

	p.notifier.Notify(ctx, record.UserID.String(),
		model.NotificationTypeVerification,
		"Identity verified",
		"Your identity verification was approved.",
		model.JSONB{"reference_id": event.ReferenceID})

	return nil
}

func (p *IdentityEventProcessor) handleDeclined(ctx context.Context, event IdentityEvent) error {
	reason := "verification declined"
	if event.Error != nil && event.Error.Message != "" {
		reason = event.Error.Message
	}
	return p.resolve(ctx, event, model.VerificationStatusRejected, reason)
}

func (p *IdentityEventProcessor) resolve(ctx context.Context, event IdentityEvent, status model.VerificationStatus, reason string) error {
	return p.verifications.UpdateStatus(ctx, event.ReferenceID, status, reason, model.JSONB(event.VerificationData))
}
