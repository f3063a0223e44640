package request_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingStore struct {
	bookings map[int64]*domain.Booking
}

func (s *fakeBookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (s *fakeBookingStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, expected []domain.BookingStatus) (*domain.Booking, error) {
	booking := s.bookings[id]
	for _, want := range expected {
		if booking.Status == want {
			booking.Status = status
			copied := *booking
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type fakeSlotStore struct {
	slots map[int64]*domain.Slot
}

func (s *fakeSlotStore) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

type fakeRescheduleStore struct {
	nextID      int64
	hasPending  map[int64]bool
	lastCreated *domain.RescheduleRequest
}

func (s *fakeRescheduleStore) Create(_ context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	if s.hasPending[request.BookingID] {
		return nil, rescheduleRepo.ErrPendingExists
	}
	s.nextID++
	created := *request
	created.ID = s.nextID
	created.Status = domain.RescheduleStatusPending
	created.RequestedAt = time.Now()
	s.lastCreated = &created
	return &created, nil
}

func newFixture() (*fakeBookingStore, *fakeSlotStore, *fakeRescheduleStore) {
	bookings := &fakeBookingStore{bookings: map[int64]*domain.Booking{
		1: {ID: 1, SlotID: 10, CustomerID: 42, Status: domain.StatusConfirmed},
	}}
	slots := &fakeSlotStore{slots: map[int64]*domain.Slot{
		10: {ID: 10, MaxBookings: 1, CurrentBookings: 1},
		20: {ID: 20, MaxBookings: 1, CurrentBookings: 0},
	}}
	reschedules := &fakeRescheduleStore{hasPending: map[int64]bool{}}
	return bookings, slots, reschedules
}

func TestExecute_CreatesPendingRequest(t *testing.T) {
	bookings, slots, reschedules := newFixture()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	uc := NewUseCase(bookings, slots, reschedules, nil, fakeTxManager{}, 48, nopLogger{})
	uc.timeProvider = fixedTime{now: now}

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, CustomerID: 42, RequestedSlotID: 20, Reason: "later works better"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RescheduleStatusPending), resp.Status)
	assert.Equal(t, now.Add(48*time.Hour), resp.ExpiresAt)

	// Статус бронирования на момент заявки сохранён для отката
	assert.Equal(t, domain.StatusConfirmed, reschedules.lastCreated.PreviousStatus)
	assert.Equal(t, int64(10), reschedules.lastCreated.OriginalSlotID)
	assert.Equal(t, int64(20), reschedules.lastCreated.RequestedSlotID)

	// Бронирование переведено в reschedule_requested
	assert.Equal(t, domain.StatusRescheduleRequested, bookings.bookings[1].Status)

	// Вместимость желаемого слота не тронута
	assert.Equal(t, 0, slots.slots[20].CurrentBookings)
}

func TestExecute_SecondRequestRejected(t *testing.T) {
	bookings, slots, reschedules := newFixture()
	uc := NewUseCase(bookings, slots, reschedules, nil, fakeTxManager{}, 48, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequestedSlotID: 20, Reason: "x"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, RequestedSlotID: 20, Reason: "x"})
	assert.ErrorIs(t, err, ErrAlreadyPending)
}

func TestExecute_UniqueIndexRace(t *testing.T) {
	bookings, slots, reschedules := newFixture()
	reschedules.hasPending[1] = true
	uc := NewUseCase(bookings, slots, reschedules, nil, fakeTxManager{}, 48, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequestedSlotID: 20, Reason: "x"})
	assert.ErrorIs(t, err, ErrAlreadyPending)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fakeBookingStore, *fakeSlotStore)
		req     *Request
		wantErr error
	}{
		{
			name:    "booking not found",
			mutate:  func(b *fakeBookingStore, s *fakeSlotStore) {},
			req:     &Request{BookingID: 99, RequestedSlotID: 20, Reason: "x"},
			wantErr: ErrBookingNotFound,
		},
		{
			// Чужое бронирование переносить нельзя
			name:    "foreign booking",
			mutate:  func(b *fakeBookingStore, s *fakeSlotStore) {},
			req:     &Request{BookingID: 1, CustomerID: 77, RequestedSlotID: 20, Reason: "x"},
			wantErr: ErrAccessDenied,
		},
		{
			name: "cancelled booking",
			mutate: func(b *fakeBookingStore, s *fakeSlotStore) {
				b.bookings[1].Status = domain.StatusCancelled
			},
			req:     &Request{BookingID: 1, RequestedSlotID: 20, Reason: "x"},
			wantErr: ErrBookingInactive,
		},
		{
			name:    "same slot",
			mutate:  func(b *fakeBookingStore, s *fakeSlotStore) {},
			req:     &Request{BookingID: 1, RequestedSlotID: 10, Reason: "x"},
			wantErr: ErrSameSlot,
		},
		{
			name:    "slot not found",
			mutate:  func(b *fakeBookingStore, s *fakeSlotStore) {},
			req:     &Request{BookingID: 1, RequestedSlotID: 99, Reason: "x"},
			wantErr: ErrSlotNotFound,
		},
		{
			name: "requested slot full",
			mutate: func(b *fakeBookingStore, s *fakeSlotStore) {
				s.slots[20].CurrentBookings = 1
			},
			req:     &Request{BookingID: 1, RequestedSlotID: 20, Reason: "x"},
			wantErr: ErrSlotUnavailable,
		},
		{
			name: "requested slot blocked",
			mutate: func(b *fakeBookingStore, s *fakeSlotStore) {
				s.slots[20].IsBlocked = true
			},
			req:     &Request{BookingID: 1, RequestedSlotID: 20, Reason: "x"},
			wantErr: ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, slots, reschedules := newFixture()
			tt.mutate(bookings, slots)
			uc := NewUseCase(bookings, slots, reschedules, nil, fakeTxManager{}, 48, nopLogger{})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
