package process_webhook

import "encoding/json"

// Типы событий шлюза
const (
	EventPaymentCaptured       = "payment.captured"
	EventPaymentFailed         = "payment.failed"
	EventRefundProcessed       = "refund.processed"
	EventSubscriptionActivated = "subscription.activated"
	EventSubscriptionPaused    = "subscription.paused"
	EventSubscriptionHalted    = "subscription.halted"
	EventSubscriptionCancelled = "subscription.cancelled"
)

// Request событие шлюза с уже проверенной подписью
// Подпись сверяется на уровне HTTP обработчика по сырому телу запроса
type Request struct {
	EventType string          // Тип события (см. Event* константы)
	Payload   json.RawMessage // Тело события
}

// Response результат применения события
// Неизвестные типы событий подтверждаются без обработки,
// чтобы шлюз не ретраил их бесконечно
type Response struct {
	Ok bool
}

// PaymentPayload тело событий payment.captured и payment.failed
type PaymentPayload struct {
	GatewayOrderID   string `json:"order_id"`
	GatewayPaymentID string `json:"payment_id"`
	AmountPaise      int64  `json:"amount"`
}

// RefundPayload тело события refund.processed
type RefundPayload struct {
	GatewayRefundID  string `json:"refund_id"`
	GatewayPaymentID string `json:"payment_id"`
	AmountPaise      int64  `json:"amount"`
}

// SubscriptionPayload тело событий subscription.*
type SubscriptionPayload struct {
	SubscriptionID string `json:"subscription_id"`
}
