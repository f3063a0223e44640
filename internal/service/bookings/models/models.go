package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64 `json:"customerId"`
	ActiveOnly bool  `json:"activeOnly"`
}

// Response модели

// SlotInfo краткие данные слота внутри бронирования
type SlotInfo struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BookingResponse бронирование для выдачи наружу
type BookingResponse struct {
	ID                 int64      `json:"id"`
	Reference          string     `json:"reference"`
	CustomerID         int64      `json:"customerId"`
	Status             string     `json:"status"`
	CustomerName       string     `json:"customerName"`
	CustomerPhone      *string    `json:"customerPhone,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	Slot               *SlotInfo  `json:"slot,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует доменное бронирование в response
func FromDomainBooking(booking *domain.Booking, slot *domain.Slot) *BookingResponse {
	resp := &BookingResponse{
		ID:                 booking.ID,
		Reference:          booking.Reference,
		CustomerID:         booking.CustomerID,
		Status:             string(booking.Status),
		CustomerName:       booking.CustomerName,
		CustomerPhone:      booking.CustomerPhone,
		Notes:              booking.Notes,
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}

	if slot != nil {
		resp.Slot = &SlotInfo{
			ID:        slot.ID,
			Date:      slot.Date.Format(domain.DateFormat),
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований в response
// Слоты подтягиваются по месту вызова, здесь только плоские данные
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, booking := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(booking, nil))
	}
	return resp
}
