package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifier     NotifierClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Резервирование места и вставка бронирования выполняются в одной
// сериализуемой транзакции: при гонке за последнее место ровно один
// из конкурентов получает бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, slot=%d", req.CustomerID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	var reservedSlot *domain.Slot

	// 2. Резервируем место и создаем бронирование атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Атомарно занимаем место в слоте
		slot, err := uc.slotRepo.Reserve(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			if errors.Is(err, slotRepo.ErrSlotUnavailable) {
				uc.logger.Warn("CreateBooking: slot id=%d unavailable", req.SlotID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to reserve slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}
		reservedSlot = slot

		// 2.2. Создаем бронирование со ссылкой на занятое место
		booking := &domain.Booking{
			SlotID:        req.SlotID,
			CustomerID:    req.CustomerID,
			Reference:     uuid.NewString(),
			Status:        domain.StatusConfirmed,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s, slot %d/%d taken",
		result.ID, result.Reference, reservedSlot.CurrentBookings, reservedSlot.MaxBookings)

	// 3. Уведомляем клиента; недоступность нотификатора не ломает операцию
	if uc.notifier != nil {
		_ = uc.notifier.Notify(ctx, notifharbor.Notification{
			Event:      notifharbor.EventBookingCreated,
			CustomerID: result.CustomerID,
			BookingID:  result.ID,
			Reference:  result.Reference,
			SlotDate:   reservedSlot.Date.Format(domain.DateFormat),
			SlotStart:  reservedSlot.StartTime.String(),
		})
	}

	return &Response{
		ID:            result.ID,
		Reference:     result.Reference,
		CustomerID:    result.CustomerID,
		SlotID:        result.SlotID,
		Status:        string(result.Status),
		SlotDate:      reservedSlot.Date,
		SlotStartTime: reservedSlot.StartTime,
		SlotEndTime:   reservedSlot.EndTime,
		CreatedAt:     result.CreatedAt,
	}, nil
}
