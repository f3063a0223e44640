package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// SlotAvailability describes the bookable state of a slot
type SlotAvailability string

const (
	SlotAvailable SlotAvailability = "available"
	SlotFull      SlotAvailability = "full"
	SlotBlocked   SlotAvailability = "blocked"
)

// Slot represents a single bookable time unit on a given date.
// (Date, SlotNumber) is unique. CurrentBookings is mutated only through
// the slot repository's Reserve/Release conditional updates, never via
// read-then-write.
type Slot struct {
	ID              int64
	Date            time.Time
	SlotNumber      int
	StartTime       types.TimeString
	EndTime         types.TimeString
	MaxBookings     int
	CurrentBookings int
	IsBlocked       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableCapacity returns the number of free booking spots
func (s *Slot) AvailableCapacity() int {
	free := s.MaxBookings - s.CurrentBookings
	if free < 0 {
		return 0
	}
	return free
}

// Availability derives the external status of the slot
func (s *Slot) Availability() SlotAvailability {
	if s.IsBlocked {
		return SlotBlocked
	}
	if s.CurrentBookings >= s.MaxBookings {
		return SlotFull
	}
	return SlotAvailable
}

// CanAcceptBooking returns true if a new reservation could succeed
func (s *Slot) CanAcceptBooking() bool {
	return !s.IsBlocked && s.CurrentBookings < s.MaxBookings
}

// HasBookings returns true if any active booking counts against this slot
func (s *Slot) HasBookings() bool {
	return s.CurrentBookings > 0
}
