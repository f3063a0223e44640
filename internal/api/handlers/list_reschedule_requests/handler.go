package list_reschedule_requests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedule"
)

const (
	msgInvalidStatus = "некорректный статус заявки"
	msgInvalidLimit  = "некорректный параметр limit"
	msgInvalidOffset = "некорректный параметр offset"
)

type Handler struct {
	service RescheduleService
	logger  Logger
}

func NewHandler(service RescheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reschedule-requests?status=pending&limit=100&offset=0
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var status *string
	if s := query.Get("status"); s != "" {
		status = &s
	}

	limit, err := parseUintParam(query.Get("limit"))
	if err != nil {
		h.logger.Warn("GET /reschedule-requests - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	offset, err := parseUintParam(query.Get("offset"))
	if err != nil {
		h.logger.Warn("GET /reschedule-requests - Invalid offset: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOffset)
		return
	}

	result, err := h.service.List(r.Context(), status, limit, offset)
	if err != nil {
		if errors.Is(err, reschedule.ErrInvalidStatus) {
			h.logger.Warn("GET /reschedule-requests - Invalid status filter")
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /reschedule-requests - Failed to list requests: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reschedule-requests - Returned %d requests", len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseUintParam(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseUint(value, 10, 64)
}
