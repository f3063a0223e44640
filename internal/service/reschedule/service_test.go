package reschedule

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
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
	statuses map[int64]domain.BookingStatus
}

func (s *fakeBookingStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, _ []domain.BookingStatus) (*domain.Booking, error) {
	s.statuses[id] = status
	return &domain.Booking{ID: id, Status: status}, nil
}

type fakeRescheduleStore struct {
	requests map[int64]*domain.RescheduleRequest
}

func (s *fakeRescheduleStore) GetByID(_ context.Context, id int64) (*domain.RescheduleRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, rescheduleRepo.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (s *fakeRescheduleStore) List(_ context.Context, status *domain.RescheduleStatus, limit, offset uint64) ([]*domain.RescheduleRequest, error) {
	var result []*domain.RescheduleRequest
	for _, request := range s.requests {
		if status == nil || request.Status == *status {
			copied := *request
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *fakeRescheduleStore) Resolve(_ context.Context, id int64, status domain.RescheduleStatus, adminNotes *string) (*domain.RescheduleRequest, error) {
	request := s.requests[id]
	if request.Status != domain.RescheduleStatusPending {
		return nil, rescheduleRepo.ErrAlreadyResolved
	}
	request.Status = status
	request.AdminNotes = adminNotes
	now := time.Now()
	request.RespondedAt = &now
	copied := *request
	return &copied, nil
}

func (s *fakeRescheduleStore) GetOverdueIDs(_ context.Context, now time.Time, limit uint64) ([]int64, error) {
	var ids []int64
	for id, request := range s.requests {
		if request.IsOverdue(now) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if uint64(len(ids)) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func pendingRequest(id, bookingID int64, expiresAt time.Time) *domain.RescheduleRequest {
	return &domain.RescheduleRequest{
		ID:             id,
		BookingID:      bookingID,
		Status:         domain.RescheduleStatusPending,
		PreviousStatus: domain.StatusConfirmed,
		ExpiresAt:      expiresAt,
	}
}

func newService(requests ...*domain.RescheduleRequest) (*Service, *fakeRescheduleStore, *fakeBookingStore) {
	reschedules := &fakeRescheduleStore{requests: map[int64]*domain.RescheduleRequest{}}
	for _, request := range requests {
		reschedules.requests[request.ID] = request
	}
	bookings := &fakeBookingStore{statuses: map[int64]domain.BookingStatus{}}

	svc := NewService(reschedules, bookings, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc, reschedules, bookings
}

// Просроченная заявка переводится в expired прямо на чтении
func TestGetByID_LazyExpiry(t *testing.T) {
	svc, reschedules, bookings := newService(pendingRequest(1, 100, testNow.Add(-time.Hour)))

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.RescheduleStatusExpired), resp.Status)
	assert.Equal(t, domain.RescheduleStatusExpired, reschedules.requests[1].Status)
	assert.Equal(t, domain.StatusConfirmed, bookings.statuses[100])
}

func TestGetByID_FreshRequestUntouched(t *testing.T) {
	svc, reschedules, _ := newService(pendingRequest(1, 100, testNow.Add(time.Hour)))

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.RescheduleStatusPending), resp.Status)
	assert.Equal(t, domain.RescheduleStatusPending, reschedules.requests[1].Status)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExpireOverdue(t *testing.T) {
	terminal := pendingRequest(3, 300, testNow.Add(-time.Hour))
	terminal.Status = domain.RescheduleStatusDeclined

	svc, reschedules, bookings := newService(
		pendingRequest(1, 100, testNow.Add(-2*time.Hour)),
		pendingRequest(2, 200, testNow.Add(-time.Minute)),
		terminal,
		pendingRequest(4, 400, testNow.Add(time.Hour)),
	)

	expired, err := svc.ExpireOverdue(context.Background(), 200)
	require.NoError(t, err)

	assert.Equal(t, 2, expired)
	assert.Equal(t, domain.RescheduleStatusExpired, reschedules.requests[1].Status)
	assert.Equal(t, domain.RescheduleStatusExpired, reschedules.requests[2].Status)
	assert.Equal(t, domain.RescheduleStatusDeclined, reschedules.requests[3].Status)
	assert.Equal(t, domain.RescheduleStatusPending, reschedules.requests[4].Status)

	assert.Equal(t, domain.StatusConfirmed, bookings.statuses[100])
	assert.Equal(t, domain.StatusConfirmed, bookings.statuses[200])
}

func TestExpireOverdue_RespectsBatchSize(t *testing.T) {
	svc, _, _ := newService(
		pendingRequest(1, 100, testNow.Add(-time.Hour)),
		pendingRequest(2, 200, testNow.Add(-time.Hour)),
		pendingRequest(3, 300, testNow.Add(-time.Hour)),
	)

	expired, err := svc.ExpireOverdue(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, expired)
}

func TestList_FilterByStatus(t *testing.T) {
	approved := pendingRequest(2, 200, testNow.Add(time.Hour))
	approved.Status = domain.RescheduleStatusApproved

	svc, _, _ := newService(pendingRequest(1, 100, testNow.Add(time.Hour)), approved)

	status := "pending"
	resp, err := svc.List(context.Background(), &status, 0, 0)
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, int64(1), resp.Requests[0].ID)

	resp, err = svc.List(context.Background(), nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Requests, 2)
}

func TestList_InvalidStatus(t *testing.T) {
	svc, _, _ := newService()

	status := "rejected"
	_, err := svc.List(context.Background(), &status, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
