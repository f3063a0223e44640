package reschedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// RescheduleRepository интерфейс репозитория заявок на перенос
type RescheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error)
	List(ctx context.Context, status *domain.RescheduleStatus, limit, offset uint64) ([]*domain.RescheduleRequest, error)
	Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, adminNotes *string) (*domain.RescheduleRequest, error)
	GetOverdueIDs(ctx context.Context, now time.Time, limit uint64) ([]int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, expected []domain.BookingStatus) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
