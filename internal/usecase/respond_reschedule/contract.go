package respond_reschedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, expected []domain.BookingStatus) (*domain.Booking, error)
	MoveToSlot(ctx context.Context, id int64, slotID int64, status domain.BookingStatus) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Reserve(ctx context.Context, slotID int64) (*domain.Slot, error)
	Release(ctx context.Context, slotID int64) (*domain.Slot, error)
}

// RescheduleRepository интерфейс репозитория заявок на перенос
type RescheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error)
	Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, adminNotes *string) (*domain.RescheduleRequest, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Notify(ctx context.Context, notification notifharbor.Notification) error
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
