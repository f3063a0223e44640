package get_template

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
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

// Handle GET /api/v1/schedule/template
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	template, err := h.service.GetTemplate(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/template - Failed to get template: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, template)
}
