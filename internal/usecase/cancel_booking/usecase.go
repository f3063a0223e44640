package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	rescheduleRepo RescheduleRepository
	notifier       NotifierClient
	txManager      TransactionManager
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
		logger:         logger,
	}
}

// Execute выполняет use case отмены бронирования
// Отмена, освобождение места и закрытие открытой заявки на перенос
// выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1.1. Загружаем бронирование и проверяем допустимость отмены
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Клиент отменяет только собственное бронирование; CustomerID = 0
		// пропускает проверку для административных вызовов
		if req.CustomerID != 0 && booking.CustomerID != req.CustomerID {
			uc.logger.Warn("CancelBooking: access denied for customer=%d to booking id=%d",
				req.CustomerID, req.BookingID)
			return ErrAccessDenied
		}

		if booking.IsCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d is already cancelled", req.BookingID)
			return ErrAlreadyCancelled
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d in status %s cannot be cancelled",
				req.BookingID, booking.Status)
			return ErrNotCancellable
		}

		// 1.2. Переводим бронирование в cancelled
		cancelled, err := uc.bookingRepo.Cancel(txCtx, req.BookingID, req.Reason)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 1.3. Освобождаем место в слоте ровно один раз
		// Повторное освобождение - предупреждение, не ошибка
		if _, err := uc.slotRepo.Release(txCtx, booking.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrNotReserved) {
				uc.logger.Warn("CancelBooking: slot id=%d had no reservations to release", booking.SlotID)
			} else {
				uc.logger.Error("CancelBooking: failed to release slot id=%d: %v", booking.SlotID, err)
				return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
			}
		}

		// 1.4. Закрываем открытую заявку на перенос, если она есть
		pending, err := uc.rescheduleRepo.GetPendingByBooking(txCtx, req.BookingID)
		if err != nil && !errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
			uc.logger.Error("CancelBooking: failed to get pending reschedule request: %v", err)
			return fmt.Errorf("%w: failed to get pending request: %v", ErrInternal, err)
		}
		if err == nil {
			if _, err := uc.rescheduleRepo.Resolve(txCtx, pending.ID, domain.RescheduleStatusSuperseded, nil); err != nil {
				uc.logger.Error("CancelBooking: failed to supersede reschedule request id=%d: %v", pending.ID, err)
				return fmt.Errorf("%w: failed to supersede request: %v", ErrInternal, err)
			}
			uc.logger.Info("CancelBooking: reschedule request id=%d superseded", pending.ID)
		}

		result = cancelled
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", result.ID)

	if uc.notifier != nil {
		_ = uc.notifier.Notify(ctx, notifharbor.Notification{
			Event:      notifharbor.EventBookingCancelled,
			CustomerID: result.CustomerID,
			BookingID:  result.ID,
			Reference:  result.Reference,
		})
	}

	return &Response{
		ID:          result.ID,
		Status:      string(result.Status),
		CancelledAt: result.CancelledAt,
	}, nil
}
