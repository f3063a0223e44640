package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
)

const (
	msgInvalidStartDate = "некорректный параметр start_date, ожидается YYYY-MM-DD"
	msgInvalidEndDate   = "некорректный параметр end_date, ожидается YYYY-MM-DD"
	msgInvalidRange     = "end_date раньше start_date"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
// Административный список всех бронирований за период
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := parseDateParam(query.Get("start_date"), time.Now())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid start_date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	to, err := parseDateParam(query.Get("end_date"), from.AddDate(0, 0, 6))
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid end_date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEndDate)
		return
	}

	result, err := h.service.GetByDateRange(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid range: %s .. %s",
				from.Format(domain.DateFormat), to.Format(domain.DateFormat))
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /bookings - Failed to get bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Returned %d bookings for %s .. %s",
		len(result.Bookings), from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseDateParam парсит YYYY-MM-DD, пустое значение заменяется дефолтом
func parseDateParam(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(domain.DateFormat, value)
}
