package domain

import "time"

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment represents a gateway payment
// BookingID nullable: платежи вне бронирований (программы, подписки)
type Payment struct {
	ID               int64
	BookingID        *int64
	AmountPaise      int64
	Status           PaymentStatus
	GatewayOrderID   string
	GatewayPaymentID *string
	GatewaySignature *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsSuccess returns true if the payment has been captured
func (p *Payment) IsSuccess() bool {
	return p.Status == PaymentStatusSuccess
}

// IsTerminal returns true if the payment reached a final state
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusSuccess ||
		p.Status == PaymentStatusFailed ||
		p.Status == PaymentStatusRefunded
}

// RefundStatus represents the status of a refund
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusProcessed RefundStatus = "processed"
	RefundStatusFailed    RefundStatus = "failed"
	// RefundStatusSimulated возврат, записанный в леджер без обращения к шлюзу
	// Используется при выключенном фиче-флаге возвратов
	RefundStatusSimulated RefundStatus = "simulated"
)

// Refund represents a refund issued against a payment
// Пара (PaymentID, AmountPaise) уникальна среди незавершившихся ошибкой
// возвратов - повторная выдача той же полосы не создает дубликат
type Refund struct {
	ID              int64
	PaymentID       int64
	AmountPaise     int64
	Status          RefundStatus
	GatewayRefundID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
