package delete_override

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidDate = "некорректная дата, ожидается YYYY-MM-DD"
	msgNotFound    = "исключение не найдено"
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

// Handle DELETE /api/v1/schedule/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /schedule/overrides/{date} - Invalid date: %s", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), date); err != nil {
		if errors.Is(err, schedule.ErrOverrideNotFound) {
			h.logger.Warn("DELETE /schedule/overrides/{date} - Override not found: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /schedule/overrides/{date} - Failed to delete override: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /schedule/overrides/{date} - Override deleted: date=%s", vars["date"])
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
