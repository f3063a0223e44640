package reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedule/models"
)

const defaultListLimit = 100

// Service сервис чтения заявок на перенос и фонового истечения
type Service struct {
	rescheduleRepo RescheduleRepository
	bookingRepo    BookingRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	rescheduleRepo RescheduleRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		rescheduleRepo: rescheduleRepo,
		bookingRepo:    bookingRepo,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// GetByID получает заявку по ID
// Просроченная открытая заявка лениво переводится в expired прямо на чтении
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RescheduleRequestResponse, error) {
	request, err := s.rescheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if request.IsOverdue(s.timeProvider.Now()) {
		expired, err := s.expireOne(ctx, request)
		if err != nil {
			return nil, err
		}
		request = expired
	}

	return models.FromDomainRequest(request), nil
}

// List получает заявки с фильтром по статусу
func (s *Service) List(ctx context.Context, status *string, limit, offset uint64) (*models.RescheduleRequestListResponse, error) {
	var domainStatus *domain.RescheduleStatus
	if status != nil {
		converted, ok := models.ToDomainRescheduleStatus(*status)
		if !ok {
			s.logger.Warn("List: invalid status filter %q", *status)
			return nil, ErrInvalidStatus
		}
		domainStatus = &converted
	}

	if limit == 0 {
		limit = defaultListLimit
	}

	requests, err := s.rescheduleRepo.List(ctx, domainStatus, limit, offset)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reschedule requests", len(requests))
	return models.FromDomainRequestList(requests), nil
}

// ExpireOverdue закрывает просроченные открытые заявки пачкой
// Возвращает количество закрытых заявок; используется фоновым воркером
func (s *Service) ExpireOverdue(ctx context.Context, batchSize uint64) (int, error) {
	now := s.timeProvider.Now()

	ids, err := s.rescheduleRepo.GetOverdueIDs(ctx, now, batchSize)
	if err != nil {
		s.logger.Error("ExpireOverdue: failed to list overdue requests: %v", err)
		return 0, fmt.Errorf("%w: ExpireOverdue - repository error: %v", ErrInternal, err)
	}

	expired := 0
	for _, id := range ids {
		request, err := s.rescheduleRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
				continue
			}
			s.logger.Error("ExpireOverdue: failed to get request id=%d: %v", id, err)
			return expired, fmt.Errorf("%w: ExpireOverdue - repository error: %v", ErrInternal, err)
		}

		// Между выборкой и обработкой заявку мог закрыть администратор
		if !request.IsOverdue(now) {
			continue
		}

		if _, err := s.expireOne(ctx, request); err != nil {
			s.logger.Error("ExpireOverdue: failed to expire request id=%d: %v", id, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("ExpireOverdue: expired %d reschedule requests", expired)
	}

	return expired, nil
}

// expireOne переводит одну просроченную заявку в expired,
// восстанавливая статус бронирования; оба шага в одной транзакции
func (s *Service) expireOne(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	var result *domain.RescheduleRequest

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.bookingRepo.UpdateStatus(txCtx, request.BookingID, request.PreviousStatus,
			[]domain.BookingStatus{domain.StatusRescheduleRequested}); err != nil {
			return fmt.Errorf("%w: failed to restore booking status: %v", ErrInternal, err)
		}

		resolved, err := s.rescheduleRepo.Resolve(txCtx, request.ID, domain.RescheduleStatusExpired, nil)
		if err != nil {
			// Гонка с решением администратора: заявка уже закрыта, не ошибка
			if errors.Is(err, rescheduleRepo.ErrAlreadyResolved) {
				resolved, err = s.rescheduleRepo.GetByID(txCtx, request.ID)
				if err != nil {
					return fmt.Errorf("%w: failed to reload request: %v", ErrInternal, err)
				}
				result = resolved
				return nil
			}
			return fmt.Errorf("%w: failed to expire request: %v", ErrInternal, err)
		}

		result = resolved
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("expireOne: request id=%d expired, booking id=%d restored to %s",
		request.ID, request.BookingID, request.PreviousStatus)

	return result, nil
}
