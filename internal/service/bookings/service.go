package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с данными его слота
// Клиент видит только собственное бронирование; customerID = 0 пропускает
// проверку для административных запросов
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for customer=%d", id, customerID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if customerID != 0 && booking.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to booking id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
		s.logger.Error("GetByID: failed to get slot id=%d: %v", booking.SlotID, err)
		return nil, fmt.Errorf("%w: GetByID - slot repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, slot), nil
}

// GetCustomerBookings получает историю бронирований клиента
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, activeOnly=%t",
		req.CustomerID, req.ActiveOnly)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.CustomerID, req.ActiveOnly)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetByDateRange получает бронирования за период по дате слота
// Административный список, проверка владельца не выполняется
func (s *Service) GetByDateRange(ctx context.Context, from, to time.Time) (*models.BookingListResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("GetByDateRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByDateRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByDateRange: fetched %d bookings for %s .. %s",
		len(bookings), from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	return models.FromDomainBookingList(bookings), nil
}
