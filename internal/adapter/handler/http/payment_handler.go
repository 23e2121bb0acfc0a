package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/domain/repository"
	"github.com/nestly-app/payments-service/internal/middleware/auth"
)

// PaymentHandler serves the SPA's read access to payment records.
type PaymentHandler struct {
	logger   *zap.Logger
	payments repository.PaymentRepository
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(logger *zap.Logger, payments repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{
		logger:   logger,
		payments: payments,
	}
}

// GetPayment returns the caller's payment record for a payment intent id
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	intentID := c.Param("intentID")
	if intentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment intent id is required"})
	}

	payment, err := h.payments.GetByIntentID(c.Request().Context(), intentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		h.logger.Error("Failed to get payment",
			zap.String("payment_intent_id", intentID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get payment"})
	}

	// Tenants may only see their own payments.
	if payment.TenantID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
	}

	return c.JSON(http.StatusOK, payment)
}
