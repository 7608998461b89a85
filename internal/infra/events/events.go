package events

import "time"

// Routing keys доменных событий
const (
	KeyBookingConfirmed = "booking.confirmed"
	KeyBookingCancelled = "booking.cancelled"
	KeyPaymentCaptured  = "payment.captured"
	KeyRefundIssued     = "refund.issued"
)

// Envelope общий конверт события
type Envelope struct {
	EventID    string      `json:"event_id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// BookingConfirmed подтверждение бронирования (оплатой или кредитом)
type BookingConfirmed struct {
	BookingID   int64     `json:"booking_id"`
	UserID      int64     `json:"user_id"`
	HealerID    int64     `json:"healer_id"`
	ServiceID   int64     `json:"service_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	PaidWith    string    `json:"paid_with"`
}

// BookingCancelled отмена бронирования
type BookingCancelled struct {
	BookingID   int64  `json:"booking_id"`
	UserID      int64  `json:"user_id"`
	RefundBand  string `json:"refund_band"`
	RefundPaise int64  `json:"refund_paise"`
}

// PaymentCaptured успешное зачисление платежа
type PaymentCaptured struct {
	PaymentID        int64  `json:"payment_id"`
	BookingID        *int64 `json:"booking_id,omitempty"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	AmountPaise      int64  `json:"amount_paise"`
}

// RefundIssued выдача возврата
type RefundIssued struct {
	RefundID    int64  `json:"refund_id"`
	PaymentID   int64  `json:"payment_id"`
	AmountPaise int64  `json:"amount_paise"`
	Status      string `json:"status"`
}
