package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByHealerAndRange получает бронирования мастера в диапазоне времени
	GetByHealerAndRange(ctx context.Context, healerID int64, from, to time.Time, activeOnly bool) ([]*domain.Booking, error)
}

// HealerRepository интерфейс репозитория мастеров
type HealerRepository interface {
	GetByID(ctx context.Context, healerID int64) (*domain.Healer, error)
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
