package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
	"github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// SlotValidator интерфейс валидатора слотов
type SlotValidator interface {
	Check(ctx context.Context, healerID, serviceID int64, scheduledAt, now time.Time, excludeBookingID *int64) (*validate_slot.CheckResult, error)
}

// GatewayClient интерфейс клиента платежного шлюза
type GatewayClient interface {
	CreateOrder(ctx context.Context, req *paygateway.CreateOrderRequest) (*paygateway.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
