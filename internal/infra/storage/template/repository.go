package template

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

var templateColumns = []string{
	"day_of_week",
	"is_working_day",
	"max_slots_per_day",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий недельного шаблона расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблона
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет запись шаблона для дня недели
// Повторный вызов для того же дня перезаписывает запись целиком
func (r *Repository) Upsert(ctx context.Context, entry *domain.WeeklyTemplateEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_template").
		Columns("day_of_week", "is_working_day", "max_slots_per_day", "start_time", "end_time").
		Values(entry.DayOfWeek, entry.IsWorkingDay, entry.MaxSlotsPerDay, entry.StartTime, entry.EndTime).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE
			SET is_working_day = EXCLUDED.is_working_day,
			    max_slots_per_day = EXCLUDED.max_slots_per_day,
			    start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
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

// GetByDay получает запись шаблона для дня недели (0 = воскресенье)
func (r *Repository) GetByDay(ctx context.Context, dayOfWeek int) (*domain.WeeklyTemplateEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("weekly_template").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := r.scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// GetAll получает все записи шаблона, отсортированные по дню недели
func (r *Repository) GetAll(ctx context.Context) ([]*domain.WeeklyTemplateEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("weekly_template").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WeeklyTemplateEntry, 0, 7)
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan entry: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanEntry(row rowScanner) (*domain.WeeklyTemplateEntry, error) {
	var entry domain.WeeklyTemplateEntry
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.DayOfWeek,
		&entry.IsWorkingDay,
		&entry.MaxSlotsPerDay,
		&entry.StartTime,
		&entry.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}
