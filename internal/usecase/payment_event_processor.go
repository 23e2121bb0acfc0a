package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/domain/model"
	"github.com/nestly-app/payments-service/internal/domain/repository"
)

// Payment intent metadata keys set by the payment-initiation flow.
const (
	metadataKeyTenantID     = "tenant_id"
	metadataKeyLandlordID   = "landlord_id"
	metadataKeyRentLedgerID = "rent_ledger_id"
)

// ProcessResult reports what happened to a dispatched event.
type ProcessResult struct {
	Duplicate bool
	Handled   bool
}

// PaymentEventProcessor applies Stripe webhook events to payment records,
// rent ledger entries and landlord wallets. Events arrive already
// signature-verified; this layer owns the idempotency check, the routing
// switch and the per-type state transitions.
type PaymentEventProcessor struct {
	events   repository.ProcessedEventRepository
	payments repository.PaymentRepository
	ledger   repository.RentLedgerRepository
	wallets  repository.WalletRepository
	notifier *NotificationService
	logger   *zap.Logger
}

// NewPaymentEventProcessor creates a new payment event processor
func NewPaymentEventProcessor(
	events repository.ProcessedEventRepository,
	payments repository.PaymentRepository,
	ledger repository.RentLedgerRepository,
	wallets repository.WalletRepository,
	notifier *NotificationService,
	logger *zap.Logger,
) *PaymentEventProcessor {
	return &PaymentEventProcessor{
		events:   events,
		payments: payments,
		ledger:   ledger,
		wallets:  wallets,
		notifier: notifier,
		logger:   logger,
	}
}

// Process dispatches a verified event to its handler. Replayed event ids
// short-circuit before any handler runs; unknown event types are logged and
// acked without touching state or the ledger. The ledger row is written only
// after the handler succeeds, so a crash mid-handler results in a replayed
// delivery rather than a lost one.
func (p *PaymentEventProcessor) Process(ctx context.Context, event stripe.Event, source model.EventSource) (*ProcessResult, error) {
	seen, err := p.events.Exists(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if seen {
		p.logger.Info("Skipping duplicate event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return &ProcessResult{Duplicate: true}, nil
	}

	p.logger.Info("Webhook event received",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("source", string(source)),
		zap.Time("created", time.Unix(event.Created, 0)))

	switch event.Type {
	case stripe.EventTypePaymentIntentCreated:
		err = p.handleIntentCreated(ctx, event)
	case stripe.EventTypePaymentIntentProcessing:
		err = p.handleIntentProcessing(ctx, event)
	case stripe.EventTypePaymentIntentSucceeded:
		err = p.handleIntentSucceeded(ctx, event)
	case stripe.EventTypePaymentIntentPaymentFailed:
		err = p.handleIntentFailed(ctx, event)
	case stripe.EventTypePayoutPaid:
		err = p.handlePayoutPaid(ctx, event)
	case stripe.EventTypeAccountUpdated:
		err = p.handleAccountUpdated(ctx, event)
	default:
		p.logger.Warn("Unhandled event type",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return &ProcessResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := p.events.Record(ctx, event.ID, string(event.Type), source); err != nil {
		return nil, err
	}

	return &ProcessResult{Handled: true}, nil
}

func (p *PaymentEventProcessor) handleIntentCreated(ctx context.Context, event stripe.Event) error {
	intent, err := parseIntent(event)
	if err != nil {
		return err
	}

	err = p.payments.MarkInitiated(ctx, intent.ID)
	if errors.Is(err, domainErrors.ErrPaymentNotFound) {
		p.logUnknownIntent(event, intent.ID)
		return nil
	}
	return err
}

func (p *PaymentEventProcessor) handleIntentProcessing(ctx context.Context, event stripe.Event) error {
	intent, err := parseIntent(event)
	if err != nil {
		return err
	}

	err = p.payments.MarkProcessing(ctx, intent.ID)
	if errors.Is(err, domainErrors.ErrPaymentNotFound) {
		p.logUnknownIntent(event, intent.ID)
		return nil
	}
	if err != nil {
		return err
	}

	p.notifier.Notify(ctx, intent.Metadata[metadataKeyTenantID],
		model.NotificationTypePayment,
		"Payment processing",
		"Your rent payment is being processed.",
		model.JSONB{"payment_intent_id": intent.ID})

	return nil
}

func (p *PaymentEventProcessor) handleIntentSucceeded(ctx context.Context, event stripe.Event) error {
	intent, err := parseIntent(event)
	if err != nil {
		return err
	}

	now := time.Now()
	amount := decimal.New(intent.AmountReceived, -2)

	err = p.payments.MarkSucceeded(ctx, intent.ID, now, rawEventData(event))
	if errors.Is(err, domainErrors.ErrPaymentNotFound) {
		p.logUnknownIntent(event, intent.ID)
	} else if err != nil {
		return err
	}

	if ledgerID := intent.Metadata[metadataKeyRentLedgerID]; ledgerID != "" {
		if err := p.ledger.MarkPaid(ctx, ledgerID, now); err != nil {
			return err
		}
	}

	if landlordID := intent.Metadata[metadataKeyLandlordID]; landlordID != "" {
		id, parseErr := uuid.Parse(landlordID)
		if parseErr != nil {
			p.logger.Warn("Skipping balance update for malformed landlord id",
				zap.String("event_id", event.ID),
				zap.String("landlord_id", landlordID))
		} else if err := p.wallets.AddPending(ctx, id, amount); err != nil {
			return err
		}
	}

	p.notifier.Notify(ctx, intent.Metadata[metadataKeyTenantID],
		model.NotificationTypePayment,
		"Payment successful",
		fmt.Sprintf("Your rent payment of $%s was received.", amount.StringFixed(2)),
		model.JSONB{"payment_intent_id": intent.ID})
	p.notifier.Notify(ctx, intent.Metadata[metadataKeyLandlordID],
		model.NotificationTypePayment,
		"Rent payment received",
		fmt.Sprintf("A rent payment of $%s is on its way to your account.", amount.StringFixed(2)),
		model.JSONB{"payment_intent_id": intent.ID})

	return nil
}

func (p *PaymentEventProcessor) handleIntentFailed(ctx context.Context, event stripe.Event) error {
	intent, err := parseIntent(event)
	if err != nil {
		return err
	}

	reason := "payment failed"
	code := ""
	if intent.LastPaymentError != nil {
		if intent.LastPaymentError.Msg != "" {
			reason = intent.LastPaymentError.Msg
		}
		code = string(intent.LastPaymentError.Code)
	}

	err = p.payments.MarkFailed(ctx, intent.ID, reason, code, time.Now(), rawEventData(event))
	if errors.Is(err, domainErrors.ErrPaymentNotFound) {
		p.logUnknownIntent(event, intent.ID)
	} else if err != nil {
		return err
	}

	// Compensating transition: a failed event after a provisional settlement
	// puts the rent back on the books.
	if ledgerID := intent.Metadata[metadataKeyRentLedgerID]; ledgerID != "" {
		if err := p.ledger.MarkUnpaid(ctx, ledgerID); err != nil {
			return err
		}
	}

	p.notifier.Notify(ctx, intent.Metadata[metadataKeyTenantID],
		model.NotificationTypePayment,
		"Payment failed",
		fmt.Sprintf("Your rent payment could not be completed: %s", reason),
		model.JSONB{"payment_intent_id": intent.ID, "failure_code": code})

	return nil
}

func (p *PaymentEventProcessor) handlePayoutPaid(ctx context.Context, event stripe.Event) error {
	var payout stripe.Payout
	if err := json.Unmarshal(event.Data.Raw, &payout); err != nil {
		return fmt.Errorf("failed to parse payout: %w", err)
	}

	if event.Account == "" {
		p.logger.Warn("Payout event without a Connect account",
			zap.String("event_id", event.ID),
			zap.String("payout_id", payout.ID))
		return nil
	}

	amount := decimal.New(payout.Amount, -2)
	err := p.wallets.RecordPayout(ctx, event.Account, amount)
	if errors.Is(err, domainErrors.ErrWalletNotFound) {
		p.logger.Warn("Payout for unknown Connect account",
			zap.String("event_id", event.ID),
			zap.String("stripe_account_id", event.Account))
		return nil
	}
	return err
}

func (p *PaymentEventProcessor) handleAccountUpdated(ctx context.Context, event stripe.Event) error {
	var account stripe.Account
	if err := json.Unmarshal(event.Data.Raw, &account); err != nil {
		return fmt.Errorf("failed to parse account: %w", err)
	}

	status := model.OnboardingStatusOnboarding
	switch {
	case account.DetailsSubmitted && account.ChargesEnabled:
		status = model.OnboardingStatusCompleted
	case account.Requirements != nil && account.Requirements.DisabledReason != "":
		status = model.OnboardingStatusRestricted
	}

	err := p.wallets.SetOnboardingStatus(ctx, account.ID, status)
	if errors.Is(err, domainErrors.ErrWalletNotFound) {
		p.logger.Warn("Account update for unknown Connect account",
			zap.String("event_id", event.ID),
			zap.String("stripe_account_id", account.ID))
		return nil
	}
	return err
}

func (p *PaymentEventProcessor) logUnknownIntent(event stripe.Event, intentID string) {
	// Acked rather than failed: the provider would otherwise redeliver an
	// event we can never resolve.
	p.logger.Warn("Event references an unknown payment intent",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("payment_intent_id", intentID))
}

func parseIntent(event stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse payment intent: %w", err)
	}
	return &intent, nil
}

// rawEventData mirrors the provider's object payload into the opaque
// payment_metadata column.
func rawEventData(event stripe.Event) model.JSONB {
	var data model.JSONB
	if err := json.Unmarshal(event.Data.Raw, &data); err != nil {
		return nil
	}
	return data
}
