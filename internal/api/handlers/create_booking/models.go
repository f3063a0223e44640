package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID        int64   `json:"slotId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID  int64  `json:"bookingId"`
	Reference  string `json:"reference"`
	CustomerID int64  `json:"customerId"`
	SlotID     int64  `json:"slotId"`
	Status     string `json:"status"`
	SlotDate   string `json:"slotDate"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	CreatedAt  string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) *createBooking.Request {
	return &createBooking.Request{
		CustomerID:    customerID,
		SlotID:        r.SlotID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:  resp.ID,
		Reference:  resp.Reference,
		CustomerID: resp.CustomerID,
		SlotID:     resp.SlotID,
		Status:     resp.Status,
		SlotDate:   resp.SlotDate.Format(domain.DateFormat),
		StartTime:  resp.SlotStartTime.String(),
		EndTime:    resp.SlotEndTime.String(),
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
