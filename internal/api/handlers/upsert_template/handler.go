package upsert_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidDayOfWeek   = "некорректный день недели, ожидается 0..6"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEntry       = "некорректная запись шаблона"
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

// Handle PUT /api/v1/schedule/template/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		h.logger.Warn("PUT /schedule/template/{dayOfWeek} - Invalid day: %s", vars["dayOfWeek"])
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.UpsertTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/template/{dayOfWeek} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.DayOfWeek = dayOfWeek

	entry, err := h.service.UpsertTemplateEntry(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /schedule/template/{dayOfWeek} - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEntry)
			return
		}
		h.logger.Error("PUT /schedule/template/{dayOfWeek} - Failed to upsert entry: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /schedule/template/{dayOfWeek} - Entry saved: day=%d", dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
