package confirm_with_credits

import (
	"context"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// CreditRepository интерфейс репозитория сессионных кредитов
type CreditRepository interface {
	// GetAvailableCreditByUser получает запись кредитов с остатком > 0
	// В транзакции блокирует строку от одновременного списания
	GetAvailableCreditByUser(ctx context.Context, userID int64) (*domain.SessionCredit, error)
	ConsumeCredit(ctx context.Context, creditID int64) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
