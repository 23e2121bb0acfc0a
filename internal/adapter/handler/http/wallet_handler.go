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

// WalletHandler serves the landlord's balance view.
type WalletHandler struct {
	logger  *zap.Logger
	wallets repository.WalletRepository
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(logger *zap.Logger, wallets repository.WalletRepository) *WalletHandler {
	return &WalletHandler{
		logger:  logger,
		wallets: wallets,
	}
}

// GetWallet returns the caller's wallet balances
func (h *WalletHandler) GetWallet(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	wallet, err := h.wallets.GetByLandlordID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrWalletNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "wallet not found"})
		}
		h.logger.Error("Failed to get wallet",
			zap.String("landlord_id", userID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get wallet"})
	}

	return c.JSON(http.StatusOK, wallet)
}
