package gateway_webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
	processWebhook "github.com/m04kA/SMC-WellnessBooking/internal/usecase/process_webhook"
)

const testWebhookSecret = "webhook-secret"

type fakeUseCase struct {
	calls int
	req   *processWebhook.Request
	err   error
}

func (f *fakeUseCase) Execute(_ context.Context, req *processWebhook.Request) (*processWebhook.Response, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &processWebhook.Response{Ok: true}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func webhookRequest(body, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(HeaderSignature, signature)
	}
	return req
}

func TestHandle_ValidSignatureAcked(t *testing.T) {
	useCase := &fakeUseCase{}
	handler := NewHandler(useCase, testWebhookSecret, noopLogger{})

	body := `{"event":"payment.captured","payload":{"order_id":"order_1"}}`
	rec := httptest.NewRecorder()
	handler.Handle(rec, webhookRequest(body, paygateway.WebhookSignature([]byte(body), testWebhookSecret)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, useCase.calls)
	assert.Equal(t, "payment.captured", useCase.req.EventType)

	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
}

func TestHandle_TamperedBodyRejected(t *testing.T) {
	useCase := &fakeUseCase{}
	handler := NewHandler(useCase, testWebhookSecret, noopLogger{})

	body := `{"event":"payment.captured","payload":{"order_id":"order_1"}}`
	signature := paygateway.WebhookSignature([]byte(body), testWebhookSecret)
	tampered := `{"event":"payment.captured","payload":{"order_id":"order_2"}}`

	rec := httptest.NewRecorder()
	handler.Handle(rec, webhookRequest(tampered, signature))

	// Событие с невалидной подписью отклоняется до вызова usecase
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, useCase.calls)
}

func TestHandle_MissingSignatureRejected(t *testing.T) {
	useCase := &fakeUseCase{}
	handler := NewHandler(useCase, testWebhookSecret, noopLogger{})

	rec := httptest.NewRecorder()
	handler.Handle(rec, webhookRequest(`{"event":"payment.captured"}`, ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, useCase.calls)
}

func TestHandle_MalformedJSONRejected(t *testing.T) {
	useCase := &fakeUseCase{}
	handler := NewHandler(useCase, testWebhookSecret, noopLogger{})

	body := `{"event":`
	rec := httptest.NewRecorder()
	handler.Handle(rec, webhookRequest(body, paygateway.WebhookSignature([]byte(body), testWebhookSecret)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, useCase.calls)
}

func TestHandle_InvalidPayloadMapsToBadRequest(t *testing.T) {
	useCase := &fakeUseCase{err: processWebhook.ErrInvalidPayload}
	handler := NewHandler(useCase, testWebhookSecret, noopLogger{})

	body := `{"event":"payment.failed","payload":{}}`
	rec := httptest.NewRecorder()
	handler.Handle(rec, webhookRequest(body, paygateway.WebhookSignature([]byte(body), testWebhookSecret)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, useCase.calls)
}
