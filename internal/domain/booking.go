package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelled           BookingStatus = "cancelled"
	StatusRescheduleRequested BookingStatus = "reschedule_requested"
)

// Booking represents a customer reservation of one slot.
// A booking always references the slot whose current_bookings counter
// it was counted into at creation time; cancellation releases that count.
type Booking struct {
	ID         int64
	SlotID     int64
	CustomerID int64
	Reference  string
	Status     BookingStatus

	CustomerName  string
	CustomerPhone *string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies slot capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusRescheduleRequested
}

// CanRequestReschedule returns true if a reschedule request may be opened
// for this booking. A booking with an open request is already in
// reschedule_requested status and cannot open a second one.
func (b *Booking) CanRequestReschedule() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
