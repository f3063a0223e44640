package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeSlotStore повторяет семантику условного UPDATE в Reserve:
// проверка и инкремент выполняются под одним мьютексом
type fakeSlotStore struct {
	mu    sync.Mutex
	slots map[int64]*domain.Slot
}

func newFakeSlotStore(slots ...*domain.Slot) *fakeSlotStore {
	s := &fakeSlotStore{slots: make(map[int64]*domain.Slot)}
	for _, slot := range slots {
		s.slots[slot.ID] = slot
	}
	return s
}

func (s *fakeSlotStore) Reserve(_ context.Context, slotID int64) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if slot.IsBlocked || slot.CurrentBookings >= slot.MaxBookings {
		return nil, slotRepo.ErrSlotUnavailable
	}
	slot.CurrentBookings++
	copied := *slot
	return &copied, nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (s *fakeBookingStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	created := *booking
	created.ID = s.nextID
	created.CreatedAt = time.Now()
	s.bookings = append(s.bookings, &created)
	return &created, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifharbor.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification notifharbor.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func testSlot(id int64, capacity int) *domain.Slot {
	return &domain.Slot{
		ID:          id,
		Date:        time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		SlotNumber:  1,
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("11:00"),
		MaxBookings: capacity,
	}
}

func TestExecute_Success(t *testing.T) {
	slots := newFakeSlotStore(testSlot(10, 2))
	bookings := &fakeBookingStore{}
	notifier := &recordingNotifier{}

	uc := NewUseCase(bookings, slots, notifier, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		SlotID:       10,
		CustomerName: "Иван Петров",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(42), resp.CustomerID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, "10:00", resp.SlotStartTime.String())

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notifharbor.EventBookingCreated, notifier.sent[0].Event)
	assert.Equal(t, resp.Reference, notifier.sent[0].Reference)
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingStore{}, newFakeSlotStore(), nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, SlotID: 99, CustomerName: "A"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotFull(t *testing.T) {
	full := testSlot(10, 1)
	full.CurrentBookings = 1
	uc := NewUseCase(&fakeBookingStore{}, newFakeSlotStore(full), nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, SlotID: 10, CustomerName: "A"})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_SlotBlocked(t *testing.T) {
	blocked := testSlot(10, 1)
	blocked.IsBlocked = true
	uc := NewUseCase(&fakeBookingStore{}, newFakeSlotStore(blocked), nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, SlotID: 10, CustomerName: "A"})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingStore{}, newFakeSlotStore(), nil, fakeTxManager{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "missing customer", req: &Request{SlotID: 1, CustomerName: "A"}},
		{name: "missing slot", req: &Request{CustomerID: 1, CustomerName: "A"}},
		{name: "empty name", req: &Request{CustomerID: 1, SlotID: 1, CustomerName: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Гонка за последнее место: из N конкурентов бронирование получает ровно один
func TestExecute_LastSpotRace(t *testing.T) {
	const workers = 16

	slots := newFakeSlotStore(testSlot(10, 1))
	bookings := &fakeBookingStore{}
	uc := NewUseCase(bookings, slots, nil, fakeTxManager{}, nopLogger{})

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				CustomerID:   int64(i + 1),
				SlotID:       10,
				CustomerName: "Client",
			})
		}(i)
	}
	wg.Wait()

	var succeeded, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotUnavailable):
			unavailable++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, unavailable)
	assert.Len(t, bookings.bookings, 1)
}
