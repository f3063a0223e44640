package domain

import "time"

// RescheduleStatus represents the state of a reschedule request.
// pending is the only non-terminal state.
type RescheduleStatus string

const (
	RescheduleStatusPending  RescheduleStatus = "pending"
	RescheduleStatusApproved RescheduleStatus = "approved"
	RescheduleStatusDeclined RescheduleStatus = "declined"
	RescheduleStatusExpired  RescheduleStatus = "expired"
	// RescheduleStatusSuperseded marks a pending request terminated because
	// its booking was cancelled before an admin decision.
	RescheduleStatusSuperseded RescheduleStatus = "superseded"
)

// RescheduleRequest is a customer proposal to move an existing booking
// to a different slot, subject to admin approval within ExpiresAt.
// At most one pending request exists per booking. Capacity is moved only
// on approval; creating a request holds nothing against the new slot.
type RescheduleRequest struct {
	ID              int64
	BookingID       int64
	OriginalSlotID  int64
	RequestedSlotID int64
	Status          RescheduleStatus
	Reason          string

	// PreviousStatus is the booking status at request creation time,
	// restored when the request leaves pending.
	PreviousStatus BookingStatus

	AdminNotes  *string
	RequestedAt time.Time
	RespondedAt *time.Time
	ExpiresAt   time.Time
}

// IsPending returns true if the request still awaits a decision
func (r *RescheduleRequest) IsPending() bool {
	return r.Status == RescheduleStatusPending
}

// IsTerminal returns true if the request has left the pending state
func (r *RescheduleRequest) IsTerminal() bool {
	return r.Status != RescheduleStatusPending
}

// IsOverdue returns true if a pending request has outlived its response window
func (r *RescheduleRequest) IsOverdue(now time.Time) bool {
	return r.IsPending() && now.After(r.ExpiresAt)
}
