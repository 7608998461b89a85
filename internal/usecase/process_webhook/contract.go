package process_webhook

import (
	"context"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error)
	// MarkSuccess переводит платеж в success, если он еще не success
	// Возвращает true, если статус был изменен этим вызовом
	MarkSuccess(ctx context.Context, id int64, gatewayPaymentID *string, signature *string) (bool, error)
	// BackfillGatewayPaymentID дописывает ID платежа шлюза, если он еще не записан
	BackfillGatewayPaymentID(ctx context.Context, id int64, gatewayPaymentID string) error
	// MarkFailedByGateway массово помечает платежи failed по идентификаторам шлюза
	MarkFailedByGateway(ctx context.Context, gatewayOrderID, gatewayPaymentID *string) (int64, error)
	MarkRefunded(ctx context.Context, id int64) error
}

// RefundRepository интерфейс репозитория возвратов
type RefundRepository interface {
	// UpsertByGatewayRefundID создает или обновляет возврат по ключу шлюза
	UpsertByGatewayRefundID(ctx context.Context, refund *domain.Refund) (*domain.Refund, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// MembershipRepository интерфейс репозитория VIP подписок
type MembershipRepository interface {
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.VIPMembership, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MembershipStatus) error
	// HasSessionCredit проверяет, выдавались ли кредиты по подписке
	HasSessionCredit(ctx context.Context, membershipID int64) (bool, error)
	CreateSessionCredit(ctx context.Context, credit *domain.SessionCredit) (*domain.SessionCredit, error)
	SetUserVIP(ctx context.Context, userID int64, vip bool) error
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
