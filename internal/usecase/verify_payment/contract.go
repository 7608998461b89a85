package verify_payment

import (
	"context"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error)
	// MarkSuccess переводит платеж в success, если он еще не success
	// Возвращает true, если статус был изменен этим вызовом
	MarkSuccess(ctx context.Context, id int64, gatewayPaymentID *string, signature *string) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
