package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WellnessBooking/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"booking_id",
	"amount_paise",
	"status",
	"gateway_order_id",
	"gateway_payment_id",
	"gateway_signature",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый платеж
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"amount_paise",
			"status",
			"gateway_order_id",
			"gateway_payment_id",
			"gateway_signature",
		).
		Values(
			payment.BookingID,
			payment.AmountPaise,
			payment.Status,
			payment.GatewayOrderID,
			payment.GatewayPaymentID,
			payment.GatewaySignature,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getByCondition(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByBookingID получает платеж бронирования (one-to-one)
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getByCondition(ctx, squirrel.Eq{"booking_id": bookingID}, "GetByBookingID")
}

// GetByGatewayOrderID получает платеж по ID заказа в шлюзе
func (r *Repository) GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	return r.getByCondition(ctx, squirrel.Eq{"gateway_order_id": orderID}, "GetByGatewayOrderID")
}

// GetByGatewayPaymentID получает платеж по ID платежа в шлюзе
func (r *Repository) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.getByCondition(ctx, squirrel.Eq{"gateway_payment_id": paymentID}, "GetByGatewayPaymentID")
}

// MarkSuccess переводит платеж в success, если он еще не success
// Возвращает true, если статус был изменён этим вызовом (идемпотентность:
// повторная доставка события дает false без изменения состояния)
func (r *Repository) MarkSuccess(ctx context.Context, id int64, gatewayPaymentID *string, signature *string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusSuccess).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.PaymentStatusSuccess})

	if gatewayPaymentID != nil {
		updateBuilder = updateBuilder.Set("gateway_payment_id", *gatewayPaymentID)
	}
	if signature != nil {
		updateBuilder = updateBuilder.Set("gateway_signature", *signature)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkSuccess - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkSuccess - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkSuccess - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// BackfillGatewayPaymentID проставляет gateway_payment_id, если он еще не задан
// Вызывается и для уже успешных платежей (повторная доставка payment.captured)
func (r *Repository) BackfillGatewayPaymentID(ctx context.Context, id int64, gatewayPaymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("gateway_payment_id", gatewayPaymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"gateway_payment_id": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: BackfillGatewayPaymentID - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BackfillGatewayPaymentID - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// MarkFailedByGateway переводит в failed все платежи, соответствующие
// идентификаторам шлюза. Без guard по текущему статусу: failed от шлюза -
// авторитетное финальное состояние
func (r *Repository) MarkFailedByGateway(ctx context.Context, gatewayOrderID, gatewayPaymentID *string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conditions := squirrel.Or{}
	if gatewayOrderID != nil {
		conditions = append(conditions, squirrel.Eq{"gateway_order_id": *gatewayOrderID})
	}
	if gatewayPaymentID != nil {
		conditions = append(conditions, squirrel.Eq{"gateway_payment_id": *gatewayPaymentID})
	}
	if len(conditions) == 0 {
		return 0, nil
	}

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusFailed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(conditions).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkFailedByGateway - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkFailedByGateway - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkFailedByGateway - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// MarkRefunded переводит платеж в refunded
// Вызывается только при возврате полной суммы платежа
func (r *Repository) MarkRefunded(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusRefunded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *Repository) getByCondition(ctx context.Context, condition squirrel.Eq, op string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(condition).
		OrderBy("id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var payment domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.AmountPaise,
		&payment.Status,
		&payment.GatewayOrderID,
		&payment.GatewayPaymentID,
		&payment.GatewaySignature,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}
