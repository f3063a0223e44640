package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingStore struct {
	bookings  map[int64]*domain.Booking
	slotDates map[int64]time.Time
}

func (s *fakeBookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (s *fakeBookingStore) GetByCustomer(_ context.Context, customerID int64, activeOnly bool) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, booking := range s.bookings {
		if booking.CustomerID != customerID {
			continue
		}
		if activeOnly && !booking.IsActive() {
			continue
		}
		result = append(result, booking)
	}
	return result, nil
}

func (s *fakeBookingStore) GetByDateRange(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, booking := range s.bookings {
		date, ok := s.slotDates[booking.SlotID]
		if !ok || date.Before(from) || date.After(to) {
			continue
		}
		result = append(result, booking)
	}
	return result, nil
}

type fakeSlotStore struct {
	slots map[int64]*domain.Slot
}

func (s *fakeSlotStore) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return slot, nil
}

func newService() (*Service, *fakeBookingStore, *fakeSlotStore) {
	bookings := &fakeBookingStore{bookings: map[int64]*domain.Booking{
		1: {ID: 1, SlotID: 10, CustomerID: 42, Reference: "ref-1", Status: domain.StatusConfirmed},
		2: {ID: 2, SlotID: 10, CustomerID: 42, Reference: "ref-2", Status: domain.StatusCancelled},
		3: {ID: 3, SlotID: 10, CustomerID: 77, Reference: "ref-3", Status: domain.StatusConfirmed},
	}, slotDates: map[int64]time.Time{
		10: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	}}
	slots := &fakeSlotStore{slots: map[int64]*domain.Slot{
		10: {
			ID:          10,
			Date:        time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			SlotNumber:  1,
			StartTime:   types.TimeString("10:00"),
			EndTime:     types.TimeString("11:00"),
			MaxBookings: 2,
		},
	}}
	return NewService(bookings, slots, nopLogger{}), bookings, slots
}

func TestGetByID_OwnerSeesSlotInfo(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, "ref-1", resp.Reference)
	require.NotNil(t, resp.Slot)
	assert.Equal(t, "10:00", resp.Slot.StartTime)
	assert.Equal(t, "2026-09-10", resp.Slot.Date)
}

func TestGetByID_ForeignBookingDenied(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.GetByID(context.Background(), 1, 77)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// customerID = 0 пропускает проверку владельца для административных запросов
func TestGetByID_AdminBypass(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetByID(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.CustomerID)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.GetByID(context.Background(), 99, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCustomerBookings(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 42,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 42,
		ActiveOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "ref-1", resp.Bookings[0].Reference)
}

func TestGetCustomerBookings_InvalidCustomer(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByDateRange(t *testing.T) {
	svc, _, _ := newService()

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetByDateRange(context.Background(), from, to)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	resp, err = svc.GetByDateRange(context.Background(), to.AddDate(0, 0, 1), to.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestGetByDateRange_EndBeforeStart(t *testing.T) {
	svc, _, _ := newService()

	from := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetByDateRange(context.Background(), from, from.AddDate(0, 0, -3))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
