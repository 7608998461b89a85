package gateway_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
	processWebhook "github.com/m04kA/SMC-WellnessBooking/internal/usecase/process_webhook"
)

// HeaderSignature заголовок с HMAC подписью тела запроса от шлюза
const HeaderSignature = "X-Gateway-Signature"

const (
	msgUnreadableBody     = "не удалось прочитать тело запроса"
	msgInvalidSignature   = "некорректная подпись вебхука"
	msgInvalidRequestBody = "некорректное тело запроса"
)

// maxBodySize ограничивает размер тела вебхука
const maxBodySize = 1 << 20

// WebhookEvent внешний формат события шлюза
type WebhookEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// WebhookResponse подтверждение приема события
type WebhookResponse struct {
	Ok bool `json:"ok"`
}

type Handler struct {
	useCase       ProcessWebhookUseCase
	webhookSecret string
	logger        Logger
}

func NewHandler(useCase ProcessWebhookUseCase, webhookSecret string, logger Logger) *Handler {
	return &Handler{
		useCase:       useCase,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Подпись проверяется по сырому телу запроса до разбора JSON.
// Событие с невалидной подписью отклоняется без каких-либо изменений в системе.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	signature := r.Header.Get(HeaderSignature)
	if !paygateway.VerifyWebhookSignature(body, signature, h.webhookSecret) {
		h.logger.Warn("POST /payments/webhook - Invalid signature")
		handlers.RespondUnauthorized(w, msgInvalidSignature)
		return
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid event body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	_, err = h.useCase.Execute(r.Context(), &processWebhook.Request{
		EventType: event.Event,
		Payload:   event.Payload,
	})
	if err != nil {
		switch {
		case errors.Is(err, processWebhook.ErrInvalidPayload):
			h.logger.Warn("POST /payments/webhook - Invalid payload: event=%s, error=%v", event.Event, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /payments/webhook - Failed: event=%s, error=%v", event.Event, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Event processed: event=%s", event.Event)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Ok: true})
}
