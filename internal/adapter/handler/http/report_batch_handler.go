package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/usecase"
)

// ReportBatchRunner runs one credit-report batch.
type ReportBatchRunner interface {
	Run(ctx context.Context, period string) (*usecase.BatchResult, error)
}

// ReportBatchHandler triggers a credit-report batch run over HTTP. Schedulers
// normally invoke the report-batch binary instead; this endpoint exists for
// operator-initiated reruns.
type ReportBatchHandler struct {
	logger  *zap.Logger
	batches ReportBatchRunner
}

// NewReportBatchHandler creates a new report batch handler
func NewReportBatchHandler(logger *zap.Logger, batches ReportBatchRunner) *ReportBatchHandler {
	return &ReportBatchHandler{
		logger:  logger,
		batches: batches,
	}
}

type triggerBatchRequest struct {
	Period string `json:"period"`
}

// Trigger runs a batch for the requested period (previous month if omitted)
func (h *ReportBatchHandler) Trigger(c echo.Context) error {
	var req triggerBatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	result, err := h.batches.Run(c.Request().Context(), req.Period)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidReportingPeriod) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Report batch run failed",
			zap.String("period", req.Period),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}
