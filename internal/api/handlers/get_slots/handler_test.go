package get_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	gotFrom time.Time
	gotTo   time.Time
	resp    *models.SlotListResponse
	err     error
}

func (s *stubService) GetSlots(_ context.Context, from, to time.Time) (*models.SlotListResponse, error) {
	s.gotFrom, s.gotTo = from, to
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func doRequest(service *stubService, target string) *httptest.ResponseRecorder {
	handler := NewHandler(service, nopLogger{})
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_ExplicitRange(t *testing.T) {
	service := &stubService{resp: &models.SlotListResponse{Slots: []models.SlotResponse{
		{ID: 1, Date: "2026-09-07", SlotNumber: 1, StartTime: "10:00", EndTime: "12:00",
			AvailableCapacity: 1, TotalCapacity: 2, Status: "available"},
	}}}

	rec := doRequest(service, "/api/v1/slots?start_date=2026-09-07&end_date=2026-09-13")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), service.gotFrom)
	assert.Equal(t, time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC), service.gotTo)
	assert.Contains(t, rec.Body.String(), `"status":"available"`)
}

// Без параметров отдается неделя, начиная с сегодняшнего дня
func TestHandle_DefaultRange(t *testing.T) {
	service := &stubService{resp: &models.SlotListResponse{Slots: []models.SlotResponse{}}}

	rec := doRequest(service, "/api/v1/slots")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 6*24*time.Hour, service.gotTo.Sub(service.gotFrom))
}

// Неизвестный параметр vehicle_size принимается и игнорируется
func TestHandle_IgnoresVehicleSize(t *testing.T) {
	service := &stubService{resp: &models.SlotListResponse{Slots: []models.SlotResponse{}}}

	rec := doRequest(service, "/api/v1/slots?vehicle_size=large")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_BadDates(t *testing.T) {
	service := &stubService{}

	rec := doRequest(service, "/api/v1/slots?start_date=07.09.2026")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(service, "/api/v1/slots?start_date=2026-09-07&end_date=tomorrow")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
