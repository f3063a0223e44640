package respond_reschedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	respondReschedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/respond_reschedule"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDecision    = "решение должно быть approve или decline"
	msgNotFound           = "заявка не найдена"
	msgResolved           = "заявка уже закрыта"
	msgExpired            = "срок ответа на заявку истек"
	msgSlotLost           = "запрошенный слот больше недоступен"
)

// RespondRequestBody HTTP request model
type RespondRequestBody struct {
	Decision string  `json:"decision"`
	Notes    *string `json:"notes,omitempty"`
}

// RespondResponse HTTP response model
type RespondResponse struct {
	RequestID   int64   `json:"requestId"`
	BookingID   int64   `json:"bookingId"`
	Status      string  `json:"status"`
	RespondedAt *string `json:"respondedAt,omitempty"`
}

type Handler struct {
	useCase RespondRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RespondRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reschedule-requests/{requestId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reschedule-requests/{id}/respond - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req RespondRequestBody
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reschedule-requests/{id}/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &respondReschedule.Request{
		RequestID: requestID,
		Decision:  req.Decision,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, respondReschedule.ErrRequestNotFound):
			h.logger.Warn("POST /reschedule-requests/{id}/respond - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, respondReschedule.ErrRequestResolved):
			h.logger.Warn("POST /reschedule-requests/{id}/respond - Already resolved: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgResolved)

		case errors.Is(err, respondReschedule.ErrRequestExpired):
			h.logger.Warn("POST /reschedule-requests/{id}/respond - Expired: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgExpired)

		case errors.Is(err, respondReschedule.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /reschedule-requests/{id}/respond - Slot lost: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgSlotLost)

		case errors.Is(err, respondReschedule.ErrInvalidDecision):
			h.logger.Warn("POST /reschedule-requests/{id}/respond - Invalid decision: %s", req.Decision)
			handlers.RespondBadRequest(w, msgInvalidDecision)

		case errors.Is(err, respondReschedule.ErrInvalidInput):
			h.logger.Warn("POST /reschedule-requests/{id}/respond - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reschedule-requests/{id}/respond - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &RespondResponse{
		RequestID: result.RequestID,
		BookingID: result.BookingID,
		Status:    result.Status,
	}
	if result.RespondedAt != nil {
		respondedAt := result.RespondedAt.Format(time.RFC3339)
		response.RespondedAt = &respondedAt
	}

	h.logger.Info("POST /reschedule-requests/{id}/respond - Resolved as %s: request_id=%d",
		result.Status, requestID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
