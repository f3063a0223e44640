package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason *string) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Release(ctx context.Context, slotID int64) (*domain.Slot, error)
}

// RescheduleRepository интерфейс репозитория заявок на перенос
type RescheduleRepository interface {
	GetPendingByBooking(ctx context.Context, bookingID int64) (*domain.RescheduleRequest, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
