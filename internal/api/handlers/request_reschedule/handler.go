package request_reschedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	requestReschedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/request_reschedule"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgBookingNotFound    = "бронирование не найдено"
	msgBookingInactive    = "бронирование отменено или завершено"
	msgAlreadyPending     = "по бронированию уже есть открытая заявка на перенос"
	msgSlotNotFound       = "запрошенный слот не найден"
	msgSlotUnavailable    = "запрошенный слот заполнен или заблокирован"
	msgSameSlot           = "запрошен перенос в текущий слот"
)

// RescheduleRequestBody HTTP request model
type RescheduleRequestBody struct {
	RequestedSlotID int64  `json:"requestedSlotId"`
	Reason          string `json:"reason,omitempty"`
}

// RescheduleRequestResponse HTTP response model
type RescheduleRequestResponse struct {
	RequestID int64  `json:"requestId"`
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expiresAt"`
}

type Handler struct {
	useCase RequestRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RequestRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequestBody
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &requestReschedule.Request{
		BookingID:       bookingID,
		CustomerID:      customerID,
		RequestedSlotID: req.RequestedSlotID,
		Reason:          req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, requestReschedule.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, requestReschedule.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%d, customer_id=%d",
				bookingID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requestReschedule.ErrBookingInactive):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking inactive: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingInactive)

		case errors.Is(err, requestReschedule.ErrAlreadyPending):
			h.logger.Warn("POST /bookings/{id}/reschedule - Already pending: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPending)

		case errors.Is(err, requestReschedule.ErrSlotNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot not found: slot_id=%d", req.RequestedSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, requestReschedule.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot unavailable: slot_id=%d", req.RequestedSlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, requestReschedule.ErrSameSlot):
			h.logger.Warn("POST /bookings/{id}/reschedule - Same slot requested: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgSameSlot)

		case errors.Is(err, requestReschedule.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Request created: request_id=%d, booking_id=%d",
		result.RequestID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, &RescheduleRequestResponse{
		RequestID: result.RequestID,
		BookingID: result.BookingID,
		Status:    result.Status,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	})
}
