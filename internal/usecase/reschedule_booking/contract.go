package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// Reschedule переносит бронирование на новое время со статусом rescheduled
	Reschedule(ctx context.Context, id int64, scheduledAt time.Time) (*domain.Booking, error)
}

// SlotValidator интерфейс валидатора слотов
type SlotValidator interface {
	Check(ctx context.Context, healerID, serviceID int64, scheduledAt, now time.Time, excludeBookingID *int64) (*validate_slot.CheckResult, error)
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
