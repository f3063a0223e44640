package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// TemplateRepository интерфейс репозитория недельного шаблона
type TemplateRepository interface {
	Upsert(ctx context.Context, entry *domain.WeeklyTemplateEntry) error
	GetByDay(ctx context.Context, dayOfWeek int) (*domain.WeeklyTemplateEntry, error)
	GetAll(ctx context.Context) ([]*domain.WeeklyTemplateEntry, error)
}

// OverrideRepository интерфейс репозитория дневных исключений
type OverrideRepository interface {
	Upsert(ctx context.Context, override *domain.DailyOverride) error
	GetByDate(ctx context.Context, date time.Time) (*domain.DailyOverride, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.DailyOverride, error)
	Delete(ctx context.Context, date time.Time) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Slot, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) (*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
