package request_reschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
)

// UseCase use case для создания заявки на перенос бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	rescheduleRepo RescheduleRepository
	notifier       NotifierClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	window         time.Duration
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	rescheduleRepo RescheduleRepository,
	notifier NotifierClient,
	txManager TransactionManager,
	windowHours int,
	logger Logger,
) *UseCase {
	if windowHours <= 0 {
		windowHours = domain.DefaultRescheduleWindowHours
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		slotRepo:       slotRepo,
		rescheduleRepo: rescheduleRepo,
		notifier:       notifier,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		window:         time.Duration(windowHours) * time.Hour,
		logger:         logger,
	}
}

// Execute выполняет use case создания заявки на перенос
// Место в желаемом слоте проверяется оптимистично и НЕ резервируется:
// вместимость переносится только при одобрении заявки, чтобы бронирование
// не держало места в двух слотах одновременно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestReschedule: booking=%d, requested_slot=%d", req.BookingID, req.RequestedSlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestReschedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.RescheduleRequest

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1.1. Загружаем бронирование и проверяем его статус
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RequestReschedule: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RequestReschedule: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Клиент переносит только собственное бронирование; CustomerID = 0
		// пропускает проверку для административных вызовов
		if req.CustomerID != 0 && booking.CustomerID != req.CustomerID {
			uc.logger.Warn("RequestReschedule: access denied for customer=%d to booking id=%d",
				req.CustomerID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.IsActive() {
			uc.logger.Warn("RequestReschedule: booking id=%d is %s", req.BookingID, booking.Status)
			return ErrBookingInactive
		}

		if !booking.CanRequestReschedule() {
			uc.logger.Warn("RequestReschedule: booking id=%d already has an open request", req.BookingID)
			return ErrAlreadyPending
		}

		if booking.SlotID == req.RequestedSlotID {
			uc.logger.Warn("RequestReschedule: booking id=%d already in slot id=%d", req.BookingID, req.RequestedSlotID)
			return ErrSameSlot
		}

		// 1.2. Оптимистичная проверка вместимости желаемого слота
		slot, err := uc.slotRepo.GetByID(txCtx, req.RequestedSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("RequestReschedule: slot id=%d not found", req.RequestedSlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("RequestReschedule: failed to get slot id=%d: %v", req.RequestedSlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if !slot.CanAcceptBooking() {
			uc.logger.Warn("RequestReschedule: slot id=%d cannot accept bookings", req.RequestedSlotID)
			return ErrSlotUnavailable
		}

		// 1.3. Создаем заявку, запоминая статус бронирования для отката
		request := &domain.RescheduleRequest{
			BookingID:       booking.ID,
			OriginalSlotID:  booking.SlotID,
			RequestedSlotID: req.RequestedSlotID,
			Reason:          req.Reason,
			PreviousStatus:  booking.Status,
			ExpiresAt:       now.Add(uc.window),
		}

		created, err := uc.rescheduleRepo.Create(txCtx, request)
		if err != nil {
			if errors.Is(err, rescheduleRepo.ErrPendingExists) {
				uc.logger.Warn("RequestReschedule: pending request already exists for booking id=%d", req.BookingID)
				return ErrAlreadyPending
			}
			uc.logger.Error("RequestReschedule: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}

		// 1.4. Переводим бронирование в reschedule_requested
		if _, err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusRescheduleRequested,
			[]domain.BookingStatus{booking.Status}); err != nil {
			uc.logger.Error("RequestReschedule: failed to update booking status: %v", err)
			return fmt.Errorf("%w: failed to update booking status: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestReschedule: created request id=%d for booking id=%d, expires at %s",
		result.ID, result.BookingID, result.ExpiresAt.Format(time.RFC3339))

	if uc.notifier != nil {
		_ = uc.notifier.Notify(ctx, notifharbor.Notification{
			Event:     notifharbor.EventRescheduleRequested,
			BookingID: result.BookingID,
		})
	}

	return &Response{
		RequestID: result.ID,
		BookingID: result.BookingID,
		Status:    string(result.Status),
		ExpiresAt: result.ExpiresAt,
	}, nil
}
