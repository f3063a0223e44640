package respond_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
)

// UseCase use case для решения администратора по заявке на перенос
type UseCase struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	rescheduleRepo RescheduleRepository
	notifier       NotifierClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	rescheduleRepo RescheduleRepository,
	notifier NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		slotRepo:       slotRepo,
		rescheduleRepo: rescheduleRepo,
		notifier:       notifier,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет решение администратора по заявке
// Просроченная заявка сначала лениво переводится в expired, решение по ней
// отклоняется с ErrRequestExpired. Перенос вместимости при одобрении:
// сначала Reserve нового слота, затем Release старого, все в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RespondReschedule: request=%d, decision=%s", req.RequestID, req.Decision)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RespondReschedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.RescheduleRequest
	var expired bool

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		expired = false
		// 1.1. Загружаем заявку
		request, err := uc.rescheduleRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
				uc.logger.Warn("RespondReschedule: request id=%d not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("RespondReschedule: failed to get request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		if request.IsTerminal() {
			uc.logger.Warn("RespondReschedule: request id=%d is already %s", req.RequestID, request.Status)
			return ErrRequestResolved
		}

		// 1.2. Ленивое истечение: просроченная заявка закрывается, статус
		// бронирования восстанавливается. Возвращаем nil, чтобы транзакция
		// с истечением зафиксировалась, отказ отдаем уже после коммита
		if request.IsOverdue(now) {
			if err := uc.expireRequest(txCtx, request); err != nil {
				return err
			}
			uc.logger.Warn("RespondReschedule: request id=%d expired before decision", req.RequestID)
			expired = true
			return nil
		}

		switch req.Decision {
		case DecisionApprove:
			result, err = uc.approve(txCtx, request, req.Notes)
		case DecisionDecline:
			result, err = uc.decline(txCtx, request, req.Notes)
		default:
			return ErrInvalidDecision
		}

		return err
	})

	if err != nil {
		return nil, err
	}

	if expired {
		return nil, ErrRequestExpired
	}

	uc.logger.Info("RespondReschedule: request id=%d resolved as %s", result.ID, result.Status)

	if uc.notifier != nil {
		_ = uc.notifier.Notify(ctx, notifharbor.Notification{
			Event:     notifharbor.EventRescheduleResolved,
			BookingID: result.BookingID,
			Outcome:   string(result.Status),
		})
	}

	return &Response{
		RequestID:   result.ID,
		BookingID:   result.BookingID,
		Status:      string(result.Status),
		RespondedAt: result.RespondedAt,
	}, nil
}

// approve одобряет заявку и переносит вместимость между слотами
func (uc *UseCase) approve(ctx context.Context, request *domain.RescheduleRequest, notes *string) (*domain.RescheduleRequest, error) {
	// 1. Занимаем место в новом слоте; отказ оставляет заявку открытой,
	// администратор выбирает другое решение вручную
	if _, err := uc.slotRepo.Reserve(ctx, request.RequestedSlotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotUnavailable) || errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("RespondReschedule: slot id=%d no longer available for request id=%d",
				request.RequestedSlotID, request.ID)
			return nil, ErrSlotNoLongerAvailable
		}
		uc.logger.Error("RespondReschedule: failed to reserve slot id=%d: %v", request.RequestedSlotID, err)
		return nil, fmt.Errorf("%w: failed to reserve requested slot: %v", ErrInternal, err)
	}

	// 2. Освобождаем место в исходном слоте
	if _, err := uc.slotRepo.Release(ctx, request.OriginalSlotID); err != nil {
		if errors.Is(err, slotRepo.ErrNotReserved) {
			uc.logger.Warn("RespondReschedule: original slot id=%d had no reservations to release",
				request.OriginalSlotID)
		} else {
			uc.logger.Error("RespondReschedule: failed to release slot id=%d: %v", request.OriginalSlotID, err)
			return nil, fmt.Errorf("%w: failed to release original slot: %v", ErrInternal, err)
		}
	}

	// 3. Переносим бронирование в новый слот и восстанавливаем статус
	if _, err := uc.bookingRepo.MoveToSlot(ctx, request.BookingID, request.RequestedSlotID, request.PreviousStatus); err != nil {
		uc.logger.Error("RespondReschedule: failed to move booking id=%d: %v", request.BookingID, err)
		return nil, fmt.Errorf("%w: failed to move booking: %v", ErrInternal, err)
	}

	// 4. Закрываем заявку
	resolved, err := uc.rescheduleRepo.Resolve(ctx, request.ID, domain.RescheduleStatusApproved, notes)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrAlreadyResolved) {
			return nil, ErrRequestResolved
		}
		uc.logger.Error("RespondReschedule: failed to resolve request id=%d: %v", request.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve request: %v", ErrInternal, err)
	}

	return resolved, nil
}

// decline отклоняет заявку без движения вместимости
func (uc *UseCase) decline(ctx context.Context, request *domain.RescheduleRequest, notes *string) (*domain.RescheduleRequest, error) {
	// 1. Восстанавливаем статус бронирования, записанный при создании заявки
	if _, err := uc.bookingRepo.UpdateStatus(ctx, request.BookingID, request.PreviousStatus,
		[]domain.BookingStatus{domain.StatusRescheduleRequested}); err != nil {
		uc.logger.Error("RespondReschedule: failed to restore booking id=%d status: %v", request.BookingID, err)
		return nil, fmt.Errorf("%w: failed to restore booking status: %v", ErrInternal, err)
	}

	// 2. Закрываем заявку
	resolved, err := uc.rescheduleRepo.Resolve(ctx, request.ID, domain.RescheduleStatusDeclined, notes)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrAlreadyResolved) {
			return nil, ErrRequestResolved
		}
		uc.logger.Error("RespondReschedule: failed to resolve request id=%d: %v", request.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve request: %v", ErrInternal, err)
	}

	return resolved, nil
}

// expireRequest лениво закрывает просроченную заявку
// Вместимость не движется: новый слот никогда не резервировался
func (uc *UseCase) expireRequest(ctx context.Context, request *domain.RescheduleRequest) error {
	if _, err := uc.bookingRepo.UpdateStatus(ctx, request.BookingID, request.PreviousStatus,
		[]domain.BookingStatus{domain.StatusRescheduleRequested}); err != nil {
		uc.logger.Error("RespondReschedule: failed to restore booking id=%d status on expiry: %v",
			request.BookingID, err)
		return fmt.Errorf("%w: failed to restore booking status: %v", ErrInternal, err)
	}

	if _, err := uc.rescheduleRepo.Resolve(ctx, request.ID, domain.RescheduleStatusExpired, nil); err != nil {
		uc.logger.Error("RespondReschedule: failed to expire request id=%d: %v", request.ID, err)
		return fmt.Errorf("%w: failed to expire request: %v", ErrInternal, err)
	}

	return nil
}
