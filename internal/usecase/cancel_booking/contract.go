package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// Cancel переводит бронирование в cancelled с причиной
	Cancel(ctx context.Context, id int64, reason *string) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

// RefundRepository интерфейс репозитория возвратов
type RefundRepository interface {
	// FindByPaymentAndAmount ищет уже записанный возврат той же суммы
	// Защита от повторной выдачи при ретрае отмены
	FindByPaymentAndAmount(ctx context.Context, paymentID, amountPaise int64) (*domain.Refund, error)
	Create(ctx context.Context, refund *domain.Refund) (*domain.Refund, error)
}

// GatewayClient интерфейс клиента платежного шлюза
type GatewayClient interface {
	CreateRefund(ctx context.Context, gatewayPaymentID string, req *paygateway.CreateRefundRequest) (*paygateway.RefundResult, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
