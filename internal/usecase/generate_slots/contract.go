package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
)

// TemplateRepository интерфейс репозитория недельного шаблона
type TemplateRepository interface {
	GetByDay(ctx context.Context, dayOfWeek int) (*domain.WeeklyTemplateEntry, error)
}

// OverrideRepository интерфейс репозитория дневных исключений
type OverrideRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DailyOverride, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByDateForUpdate(ctx context.Context, date time.Time) ([]*domain.Slot, error)
	UpsertGenerated(ctx context.Context, slot *domain.Slot) (bool, error)
	DeleteEmptyByDate(ctx context.Context, date time.Time, keepBelow int) (int64, error)
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
