package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// RescheduleRequestResponse заявка на перенос для выдачи наружу
type RescheduleRequestResponse struct {
	ID              int64      `json:"id"`
	BookingID       int64      `json:"bookingId"`
	OriginalSlotID  int64      `json:"originalSlotId"`
	RequestedSlotID int64      `json:"requestedSlotId"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason,omitempty"`
	AdminNotes      *string    `json:"adminNotes,omitempty"`
	RequestedAt     time.Time  `json:"requestedAt"`
	RespondedAt     *time.Time `json:"respondedAt,omitempty"`
	ExpiresAt       time.Time  `json:"expiresAt"`
}

// RescheduleRequestListResponse список заявок
type RescheduleRequestListResponse struct {
	Requests []RescheduleRequestResponse `json:"requests"`
}

// FromDomainRequest конвертирует доменную заявку в response
func FromDomainRequest(request *domain.RescheduleRequest) *RescheduleRequestResponse {
	return &RescheduleRequestResponse{
		ID:              request.ID,
		BookingID:       request.BookingID,
		OriginalSlotID:  request.OriginalSlotID,
		RequestedSlotID: request.RequestedSlotID,
		Status:          string(request.Status),
		Reason:          request.Reason,
		AdminNotes:      request.AdminNotes,
		RequestedAt:     request.RequestedAt,
		RespondedAt:     request.RespondedAt,
		ExpiresAt:       request.ExpiresAt,
	}
}

// FromDomainRequestList конвертирует список заявок в response
func FromDomainRequestList(requests []*domain.RescheduleRequest) *RescheduleRequestListResponse {
	resp := &RescheduleRequestListResponse{Requests: make([]RescheduleRequestResponse, 0, len(requests))}
	for _, request := range requests {
		resp.Requests = append(resp.Requests, *FromDomainRequest(request))
	}
	return resp
}

// ToDomainRescheduleStatus конвертирует строку в доменный статус заявки
func ToDomainRescheduleStatus(s string) (domain.RescheduleStatus, bool) {
	switch domain.RescheduleStatus(s) {
	case domain.RescheduleStatusPending,
		domain.RescheduleStatusApproved,
		domain.RescheduleStatusDeclined,
		domain.RescheduleStatusExpired,
		domain.RescheduleStatusSuperseded:
		return domain.RescheduleStatus(s), true
	default:
		return "", false
	}
}
