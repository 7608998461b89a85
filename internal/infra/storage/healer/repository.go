package healer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WellnessBooking/pkg/psqlbuilder"
)

// Repository репозиторий для работы с целителями
// Недельное расписание хранится в колонке availability (JSONB)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория целителей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает целителя по ID вместе с недельным расписанием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Healer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"is_active",
		"availability",
		"created_at",
		"updated_at",
	).
		From("healers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var healer domain.Healer
	var availabilityRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&healer.ID,
		&healer.Name,
		&healer.IsActive,
		&availabilityRaw,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHealerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan healer: %v", ErrScanRow, err)
	}

	healer.Availability = domain.WeeklyAvailability{}
	if len(availabilityRaw) > 0 {
		if err := json.Unmarshal(availabilityRaw, &healer.Availability); err != nil {
			return nil, fmt.Errorf("%w: GetByID - unmarshal availability: %v", ErrInvalidAvailability, err)
		}
	}

	healer.CreatedAt = createdAt.Time
	healer.UpdatedAt = updatedAt.Time

	return &healer, nil
}

// UpdateAvailability обновляет недельное расписание целителя
// Расписание принадлежит целителю; проверка прав выполняется на уровне сервиса
func (r *Repository) UpdateAvailability(ctx context.Context, id int64, availability domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - marshal availability: %v", ErrInvalidAvailability, err)
	}

	query, args, err := psqlbuilder.Update("healers").
		Set("availability", payload).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHealerNotFound
	}

	return nil
}
