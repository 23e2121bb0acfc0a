package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/nestly-app/payments-service/internal/domain/model"
	"github.com/nestly-app/payments-service/internal/usecase"
)

const testSigningSecret = "whsec_test_secret"

// MockStripeEventProcessor is a mock implementation of StripeEventProcessor
type MockStripeEventProcessor struct {
	mock.Mock
}

func (m *MockStripeEventProcessor) Process(ctx context.Context, event stripe.Event, source model.EventSource) (*usecase.ProcessResult, error) {
	args := m.Called(ctx, event, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ProcessResult), args.Error(1)
}

// signBody produces a Stripe-Signature header value for the given payload:
// t=<unix>,v1=<hex hmac-sha256 of "<unix>.<payload>">.
func signBody(payload []byte, secret string, at time.Time) string {
	ts := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func webhookRequest(body, signature string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestStripeWebhookHandler_ValidSignatureIsProcessed(t *testing.T) {
	processor := new(MockStripeEventProcessor)
	handler := NewStripeWebhookHandler(zap.NewNop(), testSigningSecret, model.EventSourceStripe, processor)

	body := `{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`
	c, rec := webhookRequest(body, signBody([]byte(body), testSigningSecret, time.Now()))

	processor.On("Process", mock.Anything, mock.MatchedBy(func(event stripe.Event) bool {
		return event.ID == "evt_1" && event.Type == stripe.EventTypePaymentIntentSucceeded
	}), model.EventSourceStripe).Return(&usecase.ProcessResult{Handled: true}, nil)

	err := handler.Handle(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	processor.AssertExpectations(t)
}

func TestStripeWebhookHandler_TamperedBodyIsRejected(t *testing.T) {
	processor := new(MockStripeEventProcessor)
	handler := NewStripeWebhookHandler(zap.NewNop(), testSigningSecret, model.EventSourceStripe, processor)

	body := `{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`
	signature := signBody([]byte(body), testSigningSecret, time.Now())
	tampered := strings.Replace(body, "pi_1", "pi_2", 1)
	c, rec := webhookRequest(tampered, signature)

	err := handler.Handle(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestStripeWebhookHandler_WrongSecretIsRejected(t *testing.T) {
	processor := new(MockStripeEventProcessor)
	handler := NewStripeWebhookHandler(zap.NewNop(), testSigningSecret, model.EventSourceStripe, processor)

	body := `{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{}}}`
	c, rec := webhookRequest(body, signBody([]byte(body), "whsec_other_secret", time.Now()))

	err := handler.Handle(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestStripeWebhookHandler_MissingSignatureHeader(t *testing.T) {
	processor := new(MockStripeEventProcessor)
	handler := NewStripeWebhookHandler(zap.NewNop(), testSigningSecret, model.EventSourceStripe, processor)

	c, rec := webhookRequest(`{"id":"evt_1"}`, "")

	err := handler.Handle(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No signature provided"}`, rec.Body.String())
}

func TestStripeWebhookHandler_MissingSecretIsServerError(t *testing.T) {
	processor := new(MockStripeEventProcessor)
	handler := NewStripeWebhookHandler(zap.NewNop(), "", model.EventSourceStripe, processor)

	body := `{"id":"evt_1"}`
	c, rec := webhookRequest(body, signBody([]byte(body), testSigningSecret, time.Now()))

	err := handler.Handle(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestStripeWebhookHandler_DuplicateEventResponse(t *testing.T) {
	processor := new(MockStripeEventProcessor)
	handler := NewStripeWebhookHandler(zap.NewNop(), testSigningSecret, model.EventSourceStripePAD, processor)

	body := `{"id":"evt_dup","type":"payment_intent.succeeded","data":{"object":{}}}`
	c, rec := webhookRequest(body, signBody([]byte(body), testSigningSecret, time.Now()))

	processor.On("Process", mock.Anything, mock.Anything, model.EventSourceStripePAD).
		Return(&usecase.ProcessResult{Duplicate: true}, nil)

	err := handler.Handle(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true,"duplicate":true}`, rec.Body.String())
}

func TestStripeWebhookHandler_ProcessingFailureIsServerError(t *testing.T) {
	processor := new(MockStripeEventProcessor)
	handler := NewStripeWebhookHandler(zap.NewNop(), testSigningSecret, model.EventSourceStripe, processor)

	body := `{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{}}}`
	c, rec := webhookRequest(body, signBody([]byte(body), testSigningSecret, time.Now()))

	processor.On("Process", mock.Anything, mock.Anything, model.EventSourceStripe).
		Return(nil, errors.New("database unavailable"))

	err := handler.Handle(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"database unavailable"}`, rec.Body.String())
}
