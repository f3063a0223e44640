package reschedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var requestColumns = []string{
	"id",
	"booking_id",
	"original_slot_id",
	"requested_slot_id",
	"status",
	"reason",
	"previous_status",
	"admin_notes",
	"requested_at",
	"responded_at",
	"expires_at",
}

// Repository репозиторий заявок на перенос бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку на перенос
// Частичный уникальный индекс в БД гарантирует не более одной
// открытой заявки на бронирование, гонка отдается как ErrPendingExists
func (r *Repository) Create(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reschedule_requests").
		Columns("booking_id", "original_slot_id", "requested_slot_id", "status", "reason", "previous_status", "expires_at").
		Values(request.BookingID, request.OriginalSlotID, request.RequestedSlotID,
			domain.RescheduleStatusPending, request.Reason, request.PreviousStatus, request.ExpiresAt).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrPendingExists
		}
		return nil, fmt.Errorf("%w: Create - scan request: %v", ErrScanRow, err)
	}

	return created, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetPendingByBooking получает открытую заявку бронирования
func (r *Repository) GetPendingByBooking(ctx context.Context, bookingID int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": domain.RescheduleStatusPending}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByBooking - build select query: %v", ErrBuildQuery, err)
	}

	request, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByBooking - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// List получает заявки с фильтром по статусу, новые первыми
func (r *Repository) List(ctx context.Context, status *domain.RescheduleStatus, limit, offset uint64) ([]*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		OrderBy("requested_at DESC").
		Limit(limit).
		Offset(offset)

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// Resolve переводит открытую заявку в финальный статус
// Условие status = 'pending' в WHERE исключает двойное разрешение:
// проигравший гонку вызов получает ErrAlreadyResolved
func (r *Repository) Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, adminNotes *string) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reschedule_requests").
		Set("status", status).
		Set("admin_notes", adminNotes).
		Set("responded_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.RescheduleStatusPending}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	request, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyResolved
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetOverdueIDs получает ID открытых заявок с истекшим сроком ответа
// Используется фоновым процессом, каждая заявка затем разрешается отдельно
func (r *Repository) GetOverdueIDs(ctx context.Context, now time.Time, limit uint64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("reschedule_requests").
		Where(squirrel.Eq{"status": domain.RescheduleStatusPending}).
		Where(squirrel.Lt{"expires_at": now}).
		OrderBy("expires_at ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverdueIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverdueIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetOverdueIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverdueIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func columnList() string {
	return "id, booking_id, original_slot_id, requested_slot_id, status, reason, previous_status, admin_notes, requested_at, responded_at, expires_at"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRequest(row rowScanner) (*domain.RescheduleRequest, error) {
	var request domain.RescheduleRequest
	var adminNotes sql.NullString
	var respondedAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.BookingID,
		&request.OriginalSlotID,
		&request.RequestedSlotID,
		&request.Status,
		&request.Reason,
		&request.PreviousStatus,
		&adminNotes,
		&request.RequestedAt,
		&respondedAt,
		&request.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	if adminNotes.Valid {
		request.AdminNotes = &adminNotes.String
	}
	if respondedAt.Valid {
		request.RespondedAt = &respondedAt.Time
	}

	return &request, nil
}

func (r *Repository) scanRequests(rows *sql.Rows) ([]*domain.RescheduleRequest, error) {
	requests := make([]*domain.RescheduleRequest, 0)

	for rows.Next() {
		request, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
