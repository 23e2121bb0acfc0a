package http

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/nestly-app/payments-service/internal/domain/model"
	"github.com/nestly-app/payments-service/internal/usecase"
)

// StripeEventProcessor dispatches a verified Stripe event.
type StripeEventProcessor interface {
	Process(ctx context.Context, event stripe.Event, source model.EventSource) (*usecase.ProcessResult, error)
}

// StripeWebhookHandler is the transport layer for one Stripe webhook
// endpoint. The rent and PAD endpoints are two instances of this handler
// with separate signing secrets.
type StripeWebhookHandler struct {
	logger        *zap.Logger
	signingSecret string
	source        model.EventSource
	processor     StripeEventProcessor
}

// NewStripeWebhookHandler creates a new Stripe webhook handler
func NewStripeWebhookHandler(logger *zap.Logger, signingSecret string, source model.EventSource, processor StripeEventProcessor) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		logger:        logger,
		signingSecret: signingSecret,
		source:        source,
		processor:     processor,
	}
}

// Handle verifies and processes one webhook delivery. Verification runs on
// the raw body bytes; parsing before the signature check would void it.
func (h *StripeWebhookHandler) Handle(c echo.Context) error {
	if h.signingSecret == "" {
		h.logger.Error("Webhook signing secret is not configured",
			zap.String("source", string(h.source)))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "webhook endpoint is not configured",
		})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")
	if sig == "" {
		h.logger.Warn("Webhook request without signature header",
			zap.String("source", string(h.source)))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No signature provided"})
	}

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.signingSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		h.logger.Error("Webhook signature verification failed",
			zap.String("source", string(h.source)),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Webhook signature verification failed: " + err.Error(),
		})
	}

	result, err := h.processor.Process(c.Request().Context(), event, h.source)
	if err != nil {
		h.logger.Error("Webhook processing failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if result.Duplicate {
		return c.JSON(http.StatusOK, echo.Map{"received": true, "duplicate": true})
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
