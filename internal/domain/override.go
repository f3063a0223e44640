package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DailyOverride is a date-specific exception to the weekly template.
// Unique per Date; when present it fully supersedes the template for
// that date. StartTime/EndTime are optional: nil keeps the template hours.
type DailyOverride struct {
	Date           time.Time
	IsWorkingDay   bool
	MaxSlotsPerDay int
	StartTime      *types.TimeString
	EndTime        *types.TimeString
	Reason         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the override invariants
func (o *DailyOverride) Validate() error {
	if o.Date.IsZero() {
		return ErrInvalidDate
	}
	if !o.IsWorkingDay {
		if o.MaxSlotsPerDay != 0 {
			return ErrNonWorkingDayWithSlots
		}
		return nil
	}
	if o.MaxSlotsPerDay < 1 || o.MaxSlotsPerDay > MaxSlotsPerDayLimit {
		return ErrInvalidSlotCount
	}
	if o.StartTime != nil {
		if err := o.StartTime.Validate(); err != nil {
			return ErrInvalidWorkingHours
		}
	}
	if o.EndTime != nil {
		if err := o.EndTime.Validate(); err != nil {
			return ErrInvalidWorkingHours
		}
	}
	if o.StartTime != nil && o.EndTime != nil && !o.StartTime.IsBefore(*o.EndTime) {
		return ErrInvalidWorkingHours
	}
	return nil
}
