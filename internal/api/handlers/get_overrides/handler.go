package get_overrides

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

// Handle GET /api/v1/schedule/overrides?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	now := time.Now()

	from, err := parseDateParam(query.Get("start_date"), now)
	if err != nil {
		h.logger.Warn("GET /schedule/overrides - Invalid start_date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	to, err := parseDateParam(query.Get("end_date"), from.AddDate(0, 0, domain.DefaultGenerationHorizonDays))
	if err != nil {
		h.logger.Warn("GET /schedule/overrides - Invalid end_date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEndDate)
		return
	}

	overrides, err := h.service.GetOverrides(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidTimeRange) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /schedule/overrides - Failed to get overrides: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, overrides)
}

func parseDateParam(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(domain.DateFormat, value)
}
