package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"slot_number",
	"start_time",
	"end_time",
	"max_bookings",
	"current_bookings",
	"is_blocked",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов
// Счетчик current_bookings изменяется только методами Reserve/Release:
// оба выполняются одним условным UPDATE, без паттерна "прочитал-проверил-записал"
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve атомарно занимает одно место в слоте
// Условие (не заблокирован, есть свободные места) и инкремент выполняются
// в одном UPDATE: из двух конкурентных вызовов за последнее место ровно один
// получает строку, второй - ErrSlotUnavailable
func (r *Repository) Reserve(ctx context.Context, slotID int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Eq{"is_blocked": false}).
		Where(squirrel.Expr("current_bookings < max_bookings")).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// различаем отсутствующий слот и занятый/заблокированный
		if _, getErr := r.GetByID(ctx, slotID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrSlotUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Release атомарно освобождает одно место в слоте
// Декремент выполняется только при current_bookings > 0: повторное
// освобождение не уводит счетчик в минус, а возвращает ErrNotReserved
func (r *Repository) Release(ctx context.Context, slotID int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Expr("current_bookings > 0")).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		if _, getErr := r.GetByID(ctx, slotID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrNotReserved
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Release - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByDateRange получает слоты в диапазоне дат включительно
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC, slot_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByDateForUpdate получает все слоты даты с блокировкой строк
// Используется генератором внутри транзакции для защиты от параллельной генерации
func (r *Repository) GetByDateForUpdate(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"slot_date": date}).
		OrderBy("slot_number ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateForUpdate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// UpsertGenerated создает слот или обновляет его границы при повторной генерации
// current_bookings и is_blocked существующего слота не затрагиваются
// Guard в WHERE не дает опустить max_bookings ниже текущего счетчика
// Возвращает true, если слот был создан, false - если обновлен
func (r *Repository) UpsertGenerated(ctx context.Context, slot *domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("slot_date", "slot_number", "start_time", "end_time", "max_bookings").
		Values(slot.Date, slot.SlotNumber, slot.StartTime, slot.EndTime, slot.MaxBookings).
		Suffix(`ON CONFLICT (slot_date, slot_number) DO UPDATE
			SET start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    max_bookings = EXCLUDED.max_bookings,
			    updated_at = NOW()
			WHERE slots.current_bookings <= EXCLUDED.max_bookings
			RETURNING id, (xmax = 0)`).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: UpsertGenerated - build upsert query: %v", ErrBuildQuery, err)
	}

	var inserted bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &inserted)
	if err == sql.ErrNoRows {
		return false, ErrCapacityConflict
	}
	if err != nil {
		return false, fmt.Errorf("%w: UpsertGenerated - execute upsert: %v", ErrExecQuery, err)
	}

	return inserted, nil
}

// SetBlocked блокирует или разблокирует слот
// Блокировка не влияет на существующие бронирования, только на новые
func (r *Repository) SetBlocked(ctx context.Context, id int64, blocked bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_blocked", blocked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetBlocked - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetBlocked - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Delete удаляет слот
// Защитный инвариант: слот с активными бронированиями удалить нельзя
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"current_bookings": 0}).
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
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrSlotHasBookings
	}

	return nil
}

// DeleteEmptyByDate удаляет все слоты даты без бронирований
// Используется генератором, когда день становится нерабочим или сужается
func (r *Repository) DeleteEmptyByDate(ctx context.Context, date time.Time, keepBelow int) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Eq{"current_bookings": 0})

	// keepBelow > 0 удаляет только хвост слотов после сужения дня
	if keepBelow > 0 {
		deleteBuilder = deleteBuilder.Where(squirrel.Gt{"slot_number": keepBelow})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEmptyByDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEmptyByDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEmptyByDate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func columnList() string {
	return "id, slot_date, slot_number, start_time, end_time, max_bookings, current_bookings, is_blocked, created_at, updated_at"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.SlotNumber,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxBookings,
		&slot.CurrentBookings,
		&slot.IsBlocked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		slot, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
