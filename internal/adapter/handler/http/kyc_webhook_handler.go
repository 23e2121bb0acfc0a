package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/netip"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nestly-app/payments-service/internal/usecase"
)

// IdentityEventProcessor dispatches a KYC webhook event.
type IdentityEventProcessor interface {
	Process(ctx context.Context, event usecase.IdentityEvent) (*usecase.ProcessResult, error)
}

// KYCWebhookHandler receives identity-verification callbacks. The provider
// does not sign its deliveries; authenticity is enforced with a CIDR
// allowlist on the client IP instead.
type KYCWebhookHandler struct {
	logger    *zap.Logger
	allowlist []netip.Prefix
	processor IdentityEventProcessor
}

// NewKYCWebhookHandler creates a new KYC webhook handler. Malformed CIDRs in
// the allowlist are rejected at startup.
func NewKYCWebhookHandler(logger *zap.Logger, allowedCIDRs []string, processor IdentityEventProcessor) (*KYCWebhookHandler, error) {
	allowlist := make([]netip.Prefix, 0, len(allowedCIDRs))
	for _, cidr := range allowedCIDRs {
		prefix, err := netip.ParsePrefix(cidr)
		if err != nil {
			return nil, err
		}
		allowlist = append(allowlist, prefix)
	}

	return &KYCWebhookHandler{
		logger:    logger,
		allowlist: allowlist,
		processor: processor,
	}, nil
}

// Handle processes one KYC webhook delivery
func (h *KYCWebhookHandler) Handle(c echo.Context) error {
	if len(h.allowlist) == 0 {
		h.logger.Error("KYC webhook allowlist is not configured")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "webhook endpoint is not configured",
		})
	}

	if !h.allowed(c.RealIP()) {
		h.logger.Warn("KYC webhook from unlisted address",
			zap.String("remote_ip", c.RealIP()))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	var event usecase.IdentityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("Error parsing identity event", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
	}

	result, err := h.processor.Process(c.Request().Context(), event)
	if err != nil {
		h.logger.Error("Identity webhook processing failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if result.Duplicate {
		return c.JSON(http.StatusOK, echo.Map{"received": true, "duplicate": true})
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

func (h *KYCWebhookHandler) allowed(remoteIP string) bool {
	addr, err := netip.ParseAddr(remoteIP)
	if err != nil {
		return false
	}
	for _, prefix := range h.allowlist {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
