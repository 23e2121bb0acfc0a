package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/nestly-app/payments-service/internal/domain/errors"
	"github.com/nestly-app/payments-service/internal/usecase"
)

// MockReportBatchRunner is a mock implementation of ReportBatchRunner
type MockReportBatchRunner struct {
	mock.Mock
}

func (m *MockReportBatchRunner) Run(ctx context.Context, period string) (*usecase.BatchResult, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BatchResult), args.Error(1)
}

func triggerRequest(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/internal/report-batches", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReportBatchHandler_Trigger(t *testing.T) {
	t.Run("runs batch for requested period", func(t *testing.T) {
		runner := new(MockReportBatchRunner)
		handler := NewReportBatchHandler(zap.NewNop(), runner)

		runner.On("Run", mock.Anything, "2024-01").Return(&usecase.BatchResult{
			BatchID:     7,
			Period:      "2024-01",
			RecordCount: 3,
			Message:     "batch completed",
		}, nil)

		c, rec := triggerRequest(`{"period":"2024-01"}`)

		assert.NoError(t, handler.Trigger(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"record_count":3`)
		runner.AssertExpectations(t)
	})

	t.Run("empty body defaults the period", func(t *testing.T) {
		runner := new(MockReportBatchRunner)
		handler := NewReportBatchHandler(zap.NewNop(), runner)

		runner.On("Run", mock.Anything, "").Return(&usecase.BatchResult{
			BatchID: 8,
			Period:  "2024-02",
			Message: "no consented users found",
		}, nil)

		c, rec := triggerRequest(`{}`)

		assert.NoError(t, handler.Trigger(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		runner.AssertExpectations(t)
	})

	t.Run("invalid period is a bad request", func(t *testing.T) {
		runner := new(MockReportBatchRunner)
		handler := NewReportBatchHandler(zap.NewNop(), runner)

		runner.On("Run", mock.Anything, "01-2024").
			Return(nil, domainErrors.ErrInvalidReportingPeriod)

		c, rec := triggerRequest(`{"period":"01-2024"}`)

		assert.NoError(t, handler.Trigger(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
