package notifharbor

import "time"

// Типы событий уведомлений
const (
	EventSlotsGenerated      = "slots.generated"
	EventBookingCreated      = "booking.created"
	EventBookingCancelled    = "booking.cancelled"
	EventRescheduleRequested = "reschedule.requested"
	EventRescheduleResolved  = "reschedule.resolved"
)

// Notification событие для отправки клиенту
type Notification struct {
	Event      string    `json:"event"`
	CustomerID int64     `json:"customer_id"`
	BookingID  int64     `json:"booking_id"`
	Reference  string    `json:"reference,omitempty"`
	SlotDate   string    `json:"slot_date,omitempty"`
	SlotStart  string    `json:"slot_start,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
