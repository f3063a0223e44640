package override

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var overrideColumns = []string{
	"override_date",
	"is_working_day",
	"max_slots_per_day",
	"start_time",
	"end_time",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий дневных исключений из расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет исключение для даты
// Повторный вызов для той же даты перезаписывает исключение целиком
func (r *Repository) Upsert(ctx context.Context, override *domain.DailyOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("daily_overrides").
		Columns("override_date", "is_working_day", "max_slots_per_day", "start_time", "end_time", "reason").
		Values(override.Date, override.IsWorkingDay, override.MaxSlotsPerDay, override.StartTime, override.EndTime, override.Reason).
		Suffix(`ON CONFLICT (override_date) DO UPDATE
			SET is_working_day = EXCLUDED.is_working_day,
			    max_slots_per_day = EXCLUDED.max_slots_per_day,
			    start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    reason = EXCLUDED.reason,
			    updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByDate получает исключение для конкретной даты
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.DailyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("daily_overrides").
		Where(squirrel.Eq{"override_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	override, err := r.scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// GetByDateRange получает исключения в диапазоне дат включительно
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.DailyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("daily_overrides").
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DailyOverride, 0)
	for rows.Next() {
		override, err := r.scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDateRange - scan override: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Delete удаляет исключение для даты
func (r *Repository) Delete(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("daily_overrides").
		Where(squirrel.Eq{"override_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanOverride(row rowScanner) (*domain.DailyOverride, error) {
	var override domain.DailyOverride
	var startTime, endTime types.TimeString
	var reason sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.Date,
		&override.IsWorkingDay,
		&override.MaxSlotsPerDay,
		&startTime,
		&endTime,
		&reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// NULL в TIME колонке сканируется в пустую строку
	if !startTime.IsZero() {
		override.StartTime = &startTime
	}
	if !endTime.IsZero() {
		override.EndTime = &endTime
	}
	if reason.Valid {
		override.Reason = &reason.String
	}
	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
