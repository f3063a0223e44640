package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	overrideRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/override"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// Service сервис для работы с расписанием: шаблон, исключения, слоты
type Service struct {
	templateRepo TemplateRepository
	overrideRepo OverrideRepository
	slotRepo     SlotRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	templateRepo TemplateRepository,
	overrideRepo OverrideRepository,
	slotRepo SlotRepository,
	logger Logger,
) *Service {
	return &Service{
		templateRepo: templateRepo,
		overrideRepo: overrideRepo,
		slotRepo:     slotRepo,
		logger:       logger,
	}
}

// UpsertTemplateEntry сохраняет запись недельного шаблона
func (s *Service) UpsertTemplateEntry(ctx context.Context, req *models.UpsertTemplateRequest) (*models.TemplateEntryResponse, error) {
	s.logger.Info("UpsertTemplateEntry: day=%d, working=%t, slots=%d", req.DayOfWeek, req.IsWorkingDay, req.MaxSlotsPerDay)

	entry, err := req.ToDomainTemplateEntry()
	if err != nil {
		s.logger.Warn("UpsertTemplateEntry: invalid time format: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := entry.Validate(); err != nil {
		s.logger.Warn("UpsertTemplateEntry: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.templateRepo.Upsert(ctx, entry); err != nil {
		s.logger.Error("UpsertTemplateEntry: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertTemplateEntry - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertTemplateEntry: saved entry for day=%d", entry.DayOfWeek)
	resp := models.FromDomainTemplateEntry(entry)
	return &resp, nil
}

// GetTemplate получает весь недельный шаблон
func (s *Service) GetTemplate(ctx context.Context) (*models.TemplateResponse, error) {
	entries, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetTemplate: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplate(entries), nil
}

// UpsertOverride сохраняет дневное исключение
func (s *Service) UpsertOverride(ctx context.Context, date time.Time, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("UpsertOverride: date=%s, working=%t, slots=%d",
		date.Format(domain.DateFormat), req.IsWorkingDay, req.MaxSlotsPerDay)

	override, err := req.ToDomainOverride(date)
	if err != nil {
		s.logger.Warn("UpsertOverride: invalid time format: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := override.Validate(); err != nil {
		s.logger.Warn("UpsertOverride: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.overrideRepo.Upsert(ctx, override); err != nil {
		s.logger.Error("UpsertOverride: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertOverride: saved override for %s", date.Format(domain.DateFormat))
	resp := models.FromDomainOverride(override)
	return &resp, nil
}

// GetOverrides получает исключения за период
func (s *Service) GetOverrides(ctx context.Context, from, to time.Time) (*models.OverrideListResponse, error) {
	if to.Before(from) {
		return nil, ErrInvalidTimeRange
	}

	overrides, err := s.overrideRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("GetOverrides: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetOverrides - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverrideList(overrides), nil
}

// DeleteOverride удаляет исключение для даты
func (s *Service) DeleteOverride(ctx context.Context, date time.Time) error {
	s.logger.Info("DeleteOverride: date=%s", date.Format(domain.DateFormat))

	if err := s.overrideRepo.Delete(ctx, date); err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override for %s not found", date.Format(domain.DateFormat))
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error: %v", err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetSlots получает слоты за период с производным статусом доступности
func (s *Service) GetSlots(ctx context.Context, from, to time.Time) (*models.SlotListResponse, error) {
	if to.Before(from) {
		return nil, ErrInvalidTimeRange
	}

	slots, err := s.slotRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("GetSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSlots: fetched %d slots for %s .. %s",
		len(slots), from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	return models.FromDomainSlotList(slots), nil
}

// SetSlotBlocked блокирует или разблокирует слот
// Блокировка не трогает существующие бронирования, только новые
func (s *Service) SetSlotBlocked(ctx context.Context, slotID int64, blocked bool) (*models.SlotResponse, error) {
	s.logger.Info("SetSlotBlocked: slot=%d, blocked=%t", slotID, blocked)

	slot, err := s.slotRepo.SetBlocked(ctx, slotID, blocked)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("SetSlotBlocked: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("SetSlotBlocked: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetSlotBlocked - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainSlot(slot)
	return &resp, nil
}
