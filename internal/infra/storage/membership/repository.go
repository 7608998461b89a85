package membership

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WellnessBooking/pkg/psqlbuilder"
)

// Repository репозиторий VIP подписок и сессионных кредитов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория подписок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySubscriptionID получает подписку по ID подписки в шлюзе
func (r *Repository) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.VIPMembership, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"subscription_id",
		"status",
		"created_at",
		"updated_at",
	).
		From("vip_memberships").
		Where(squirrel.Eq{"subscription_id": subscriptionID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySubscriptionID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.VIPMembership
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.UserID,
		&m.SubscriptionID,
		&m.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySubscriptionID - scan membership: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}

// UpdateStatus обновляет статус подписки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.MembershipStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vip_memberships").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

// HasSessionCredit проверяет, выдавались ли кредиты по данной подписке
// Используется как guard от повторной выдачи при replay события активации
func (r *Repository) HasSessionCredit(ctx context.Context, membershipID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("session_credits").
		Where(squirrel.Eq{"membership_id": membershipID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasSessionCredit - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasSessionCredit - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// CreateSessionCredit создает запись о выданных кредитах
func (r *Repository) CreateSessionCredit(ctx context.Context, credit *domain.SessionCredit) (*domain.SessionCredit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("session_credits").
		Columns(
			"membership_id",
			"user_id",
			"total",
			"used",
		).
		Values(
			credit.MembershipID,
			credit.UserID,
			credit.Total,
			credit.Used,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSessionCredit - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&credit.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSessionCredit - execute insert: %v", ErrExecQuery, err)
	}

	credit.CreatedAt = createdAt.Time
	credit.UpdatedAt = updatedAt.Time

	return credit, nil
}

// GetAvailableCreditByUser получает запись кредитов пользователя с остатком > 0
// Внутри транзакции блокирует строку (FOR UPDATE) для защиты от
// одновременного списания последнего кредита
func (r *Repository) GetAvailableCreditByUser(ctx context.Context, userID int64) (*domain.SessionCredit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"membership_id",
		"user_id",
		"total",
		"used",
		"created_at",
		"updated_at",
	).
		From("session_credits").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Expr("used < total")).
		OrderBy("created_at ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableCreditByUser - build select query: %v", ErrBuildQuery, err)
	}

	var credit domain.SessionCredit
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&credit.ID,
		&credit.MembershipID,
		&credit.UserID,
		&credit.Total,
		&credit.Used,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCreditNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableCreditByUser - scan credit: %v", ErrScanRow, err)
	}

	credit.CreatedAt = createdAt.Time
	credit.UpdatedAt = updatedAt.Time

	return &credit, nil
}

// ConsumeCredit списывает один кредит из записи
// Guard used < total в условии запроса исключает уход в минус
func (r *Repository) ConsumeCredit(ctx context.Context, creditID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("session_credits").
		Set("used", squirrel.Expr("used + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": creditID}).
		Where(squirrel.Expr("used < total")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConsumeCredit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConsumeCredit - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConsumeCredit - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNoCreditsLeft
	}

	return nil
}

// SetUserVIP устанавливает VIP флаг пользователя
func (r *Repository) SetUserVIP(ctx context.Context, userID int64, vip bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("vip", vip).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetUserVIP - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetUserVIP - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
