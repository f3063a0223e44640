package domain

import "errors"

// Default configuration values
const (
	DefaultRescheduleWindowHours = 48
	DefaultGenerationHorizonDays = 90
	DefaultMaxBookingsPerSlot    = 1
)

// Business validation constants
const (
	MaxSlotsPerDayLimit   = 24
	MaxBookingsPerSlotCap = 100
	MaxReasonLength       = 500
	MaxNotesLength        = 500
	MaxCustomerNameLength = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Shared validation errors for template/override invariants
var (
	ErrInvalidDayOfWeek       = errors.New("domain: day of week must be in 0..6")
	ErrInvalidDate            = errors.New("domain: date is required")
	ErrNonWorkingDayWithSlots = errors.New("domain: non-working day must have zero slots")
	ErrInvalidSlotCount       = errors.New("domain: slots per day out of range")
	ErrInvalidWorkingHours    = errors.New("domain: invalid working hours")
)

// ActiveStatuses список статусов бронирований, занимающих место в слоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusRescheduleRequested,
}

// InactiveStatuses список статусов, не занимающих место в слоте
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
