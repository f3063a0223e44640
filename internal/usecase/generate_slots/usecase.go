package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	overrideRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/override"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/template"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
)

// UseCase use case генерации слотов по недельному шаблону и исключениям
type UseCase struct {
	templateRepo       TemplateRepository
	overrideRepo       OverrideRepository
	slotRepo           SlotRepository
	notifier           NotifierClient
	txManager          TransactionManager
	timeProvider       TimeProvider
	horizonDays        int
	maxBookingsPerSlot int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	templateRepo TemplateRepository,
	overrideRepo OverrideRepository,
	slotRepo SlotRepository,
	notifier NotifierClient,
	txManager TransactionManager,
	horizonDays int,
	maxBookingsPerSlot int,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultGenerationHorizonDays
	}
	if maxBookingsPerSlot <= 0 {
		maxBookingsPerSlot = domain.DefaultMaxBookingsPerSlot
	}
	return &UseCase{
		templateRepo:       templateRepo,
		overrideRepo:       overrideRepo,
		slotRepo:           slotRepo,
		notifier:           notifier,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		horizonDays:        horizonDays,
		maxBookingsPerSlot: maxBookingsPerSlot,
		logger:             logger,
	}
}

// Execute выполняет генерацию слотов для диапазона дат
// Каждая дата обрабатывается в собственной сериализуемой транзакции:
// конфликт по одной дате не откатывает остальные
// Повторный запуск по тому же диапазону идемпотентен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: range %s .. %s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация диапазона
	if err := validateRequest(req, uc.horizonDays); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{Conflicts: make([]Conflict, 0)}

	// 2. Обрабатываем каждую дату диапазона независимо
	for date := dateOnly(req.StartDate); !date.After(req.EndDate); date = date.AddDate(0, 0, 1) {
		created, updated, deleted, err := uc.generateDate(ctx, date)
		if err != nil {
			if errors.Is(err, slotRepo.ErrCapacityConflict) {
				uc.logger.Warn("GenerateSlots: capacity conflict on %s, date skipped", date.Format(domain.DateFormat))
				resp.Conflicts = append(resp.Conflicts, Conflict{
					Date:   date,
					Reason: "existing bookings exceed new slot capacity",
				})
				continue
			}
			if errors.Is(err, errBookedOnNonWorking) {
				uc.logger.Warn("GenerateSlots: booked slots on non-working date %s, date skipped", date.Format(domain.DateFormat))
				resp.Conflicts = append(resp.Conflicts, Conflict{
					Date:   date,
					Reason: "non-working day still has booked slots",
				})
				continue
			}
			if errors.Is(err, errUnusableDayConfig) {
				uc.logger.Warn("GenerateSlots: unusable working hours on %s, date skipped", date.Format(domain.DateFormat))
				resp.Conflicts = append(resp.Conflicts, Conflict{
					Date:   date,
					Reason: "working day has no usable hours",
				})
				continue
			}
			uc.logger.Error("GenerateSlots: failed on %s: %v", date.Format(domain.DateFormat), err)
			return nil, err
		}

		resp.SlotsCreated += created
		resp.SlotsUpdated += updated
		resp.SlotsDeleted += deleted
	}

	uc.logger.Info("GenerateSlots: done, created=%d updated=%d deleted=%d conflicts=%d",
		resp.SlotsCreated, resp.SlotsUpdated, resp.SlotsDeleted, len(resp.Conflicts))

	// 3. Отчет о генерации; недоступность нотификатора не ломает операцию
	if uc.notifier != nil {
		_ = uc.notifier.Notify(ctx, notifharbor.Notification{
			Event: notifharbor.EventSlotsGenerated,
			Outcome: fmt.Sprintf("range %s..%s: created=%d updated=%d deleted=%d conflicts=%d",
				req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
				resp.SlotsCreated, resp.SlotsUpdated, resp.SlotsDeleted, len(resp.Conflicts)),
		})
	}

	return resp, nil
}

// errBookedOnNonWorking внутренний маркер: нерабочий день с занятыми слотами
var errBookedOnNonWorking = errors.New("generate_slots: booked slots on non-working day")

// errUnusableDayConfig внутренний маркер: рабочий день без пригодных часов
// Возникает, когда рабочее исключение не несет часов, а шаблона на день нет
var errUnusableDayConfig = errors.New("generate_slots: working day without usable hours")

// generateDate генерирует слоты одной даты в сериализуемой транзакции
func (uc *UseCase) generateDate(ctx context.Context, date time.Time) (created, updated, deleted int, err error) {
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, updated, deleted = 0, 0, 0

		// 1. Разрешаем эффективную конфигурацию дня: исключение важнее шаблона
		cfg, err := uc.resolveDayConfig(txCtx, date)
		if err != nil {
			return err
		}

		// 2. Блокируем существующие слоты даты от параллельной генерации
		existing, err := uc.slotRepo.GetByDateForUpdate(txCtx, date)
		if err != nil {
			return fmt.Errorf("%w: failed to lock slots: %v", ErrInternal, err)
		}

		// 3. Нерабочий день: чистим слоты без бронирований,
		// занятые слоты оставляем и репортим конфликт
		if !cfg.IsWorkingDay || cfg.MaxSlotsPerDay == 0 {
			removed, err := uc.slotRepo.DeleteEmptyByDate(txCtx, date, 0)
			if err != nil {
				return fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
			}
			deleted = int(removed)

			for _, slot := range existing {
				if slot.HasBookings() {
					return errBookedOnNonWorking
				}
			}
			return nil
		}

		// 4. Равномерно режем рабочие часы на слоты фиксированной ширины
		// Непригодные часы (пустые или слишком короткие) - конфликт одной
		// даты, остальные даты диапазона продолжают обрабатываться
		bounds, err := splitWorkingHours(cfg.StartTime, cfg.EndTime, cfg.MaxSlotsPerDay)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				return errUnusableDayConfig
			}
			return err
		}

		// 5. Апсертим каждый слот, не трогая счетчики и блокировки существующих
		for i, b := range bounds {
			slot := &domain.Slot{
				Date:        date,
				SlotNumber:  i + 1,
				StartTime:   b.start,
				EndTime:     b.end,
				MaxBookings: uc.maxBookingsPerSlot,
			}

			inserted, err := uc.slotRepo.UpsertGenerated(txCtx, slot)
			if err != nil {
				// ErrCapacityConflict пробрасываем как есть для отчета по дате
				return err
			}

			if inserted {
				created++
			} else {
				updated++
			}
		}

		// 6. Если день сузился, убираем хвост слотов без бронирований
		if len(existing) > cfg.MaxSlotsPerDay {
			removed, err := uc.slotRepo.DeleteEmptyByDate(txCtx, date, cfg.MaxSlotsPerDay)
			if err != nil {
				return fmt.Errorf("%w: failed to trim slots: %v", ErrInternal, err)
			}
			deleted += int(removed)

			for _, slot := range existing {
				if slot.SlotNumber > cfg.MaxSlotsPerDay && slot.HasBookings() {
					return slotRepo.ErrCapacityConflict
				}
			}
		}

		return nil
	})

	if txErr != nil {
		return 0, 0, 0, txErr
	}
	return created, updated, deleted, nil
}

// resolveDayConfig собирает эффективную конфигурацию даты
func (uc *UseCase) resolveDayConfig(ctx context.Context, date time.Time) (domain.DayConfig, error) {
	var tpl *domain.WeeklyTemplateEntry
	entry, err := uc.templateRepo.GetByDay(ctx, int(date.Weekday()))
	if err != nil && !errors.Is(err, templateRepo.ErrEntryNotFound) {
		return domain.DayConfig{}, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}
	if err == nil {
		tpl = entry
	}

	var ovr *domain.DailyOverride
	override, err := uc.overrideRepo.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, overrideRepo.ErrOverrideNotFound) {
		return domain.DayConfig{}, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}
	if err == nil {
		ovr = override
	}

	return domain.ResolveDayConfig(date, tpl, ovr), nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
