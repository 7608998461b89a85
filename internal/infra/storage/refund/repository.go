package refund

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WellnessBooking/pkg/psqlbuilder"
)

var refundColumns = []string{
	"id",
	"payment_id",
	"amount_paise",
	"status",
	"gateway_refund_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с возвратами
// Леджер append-only: запись на каждую выдачу возврата, дубликаты
// предотвращаются проверкой FindByPaymentAndAmount и upsert по gateway_refund_id
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория возвратов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись о возврате
func (r *Repository) Create(ctx context.Context, refund *domain.Refund) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("refunds").
		Columns(
			"payment_id",
			"amount_paise",
			"status",
			"gateway_refund_id",
		).
		Values(
			refund.PaymentID,
			refund.AmountPaise,
			refund.Status,
			refund.GatewayRefundID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&refund.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	refund.CreatedAt = createdAt.Time
	refund.UpdatedAt = updatedAt.Time

	return refund, nil
}

// FindByPaymentAndAmount ищет существующий возврат по паре (payment_id, amount)
// Возвраты со статусом failed не учитываются - после неудачи выдачу можно повторить
// Используется как проверка идемпотентности перед обращением к шлюзу
func (r *Repository) FindByPaymentAndAmount(ctx context.Context, paymentID, amountPaise int64) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(refundColumns...).
		From("refunds").
		Where(squirrel.Eq{"payment_id": paymentID}).
		Where(squirrel.Eq{"amount_paise": amountPaise}).
		Where(squirrel.NotEq{"status": domain.RefundStatusFailed}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByPaymentAndAmount - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanRefund(executor.QueryRowContext(ctx, query, args...), "FindByPaymentAndAmount")
}

// GetByGatewayRefundID получает возврат по ID возврата в шлюзе
func (r *Repository) GetByGatewayRefundID(ctx context.Context, gatewayRefundID string) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(refundColumns...).
		From("refunds").
		Where(squirrel.Eq{"gateway_refund_id": gatewayRefundID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByGatewayRefundID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanRefund(executor.QueryRowContext(ctx, query, args...), "GetByGatewayRefundID")
}

// UpsertByGatewayRefundID создает или обновляет возврат по ключу gateway_refund_id
// Повторная доставка refund.processed обновляет статус существующей записи,
// не создавая дубликат
func (r *Repository) UpsertByGatewayRefundID(ctx context.Context, refund *domain.Refund) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("refunds").
		Columns(
			"payment_id",
			"amount_paise",
			"status",
			"gateway_refund_id",
		).
		Values(
			refund.PaymentID,
			refund.AmountPaise,
			refund.Status,
			refund.GatewayRefundID,
		).
		Suffix("ON CONFLICT (gateway_refund_id) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()").
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByGatewayRefundID - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&refund.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByGatewayRefundID - execute upsert: %v", ErrExecQuery, err)
	}

	refund.CreatedAt = createdAt.Time
	refund.UpdatedAt = updatedAt.Time

	return refund, nil
}

func (r *Repository) scanRefund(row *sql.Row, op string) (*domain.Refund, error) {
	var refund domain.Refund
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&refund.ID,
		&refund.PaymentID,
		&refund.AmountPaise,
		&refund.Status,
		&refund.GatewayRefundID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRefundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan refund: %v", ErrScanRow, op, err)
	}

	refund.CreatedAt = createdAt.Time
	refund.UpdatedAt = updatedAt.Time

	return &refund, nil
}
