package healers

import (
	"context"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
)

// HealerRepository интерфейс репозитория мастеров
type HealerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Healer, error)
	UpdateAvailability(ctx context.Context, id int64, availability domain.WeeklyAvailability) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
