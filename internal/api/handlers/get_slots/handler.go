package get_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidStartDate = "некорректный параметр start_date, ожидается YYYY-MM-DD"
	msgInvalidEndDate   = "некорректный параметр end_date, ожидается YYYY-MM-DD"
	msgInvalidRange     = "end_date раньше start_date"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
// Необязательный параметр vehicle_size принимается и игнорируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := parseDateParam(query.Get("start_date"), time.Now())
	if err != nil {
		h.logger.Warn("GET /slots - Invalid start_date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	to, err := parseDateParam(query.Get("end_date"), from.AddDate(0, 0, 6))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid end_date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEndDate)
		return
	}

	slots, err := h.service.GetSlots(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidTimeRange) {
			h.logger.Warn("GET /slots - Invalid range: %s .. %s",
				from.Format(domain.DateFormat), to.Format(domain.DateFormat))
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /slots - Failed to get slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Returned %d slots for %s .. %s",
		len(slots.Slots), from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, slots)
}

// parseDateParam парсит YYYY-MM-DD, пустое значение заменяется дефолтом
func parseDateParam(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(domain.DateFormat, value)
}
