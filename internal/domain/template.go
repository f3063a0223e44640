package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// WeeklyTemplateEntry is the recurring default configuration for one day
// of the week. At most one entry exists per DayOfWeek (0 = Sunday).
// Entries are only ever upserted, never deleted.
type WeeklyTemplateEntry struct {
	DayOfWeek      int
	IsWorkingDay   bool
	MaxSlotsPerDay int
	StartTime      types.TimeString
	EndTime        types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the template entry invariants
func (e *WeeklyTemplateEntry) Validate() error {
	if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if !e.IsWorkingDay {
		if e.MaxSlotsPerDay != 0 {
			return ErrNonWorkingDayWithSlots
		}
		return nil
	}
	if e.MaxSlotsPerDay < 1 || e.MaxSlotsPerDay > MaxSlotsPerDayLimit {
		return ErrInvalidSlotCount
	}
	if err := e.StartTime.Validate(); err != nil {
		return ErrInvalidWorkingHours
	}
	if err := e.EndTime.Validate(); err != nil {
		return ErrInvalidWorkingHours
	}
	if !e.StartTime.IsBefore(e.EndTime) {
		return ErrInvalidWorkingHours
	}
	return nil
}

// DayConfig is the effective configuration for one concrete date after
// applying override precedence: an override fully supersedes the template.
type DayConfig struct {
	Date           time.Time
	IsWorkingDay   bool
	MaxSlotsPerDay int
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// ResolveDayConfig builds the effective config for a date from the weekly
// template entry and an optional daily override.
func ResolveDayConfig(date time.Time, tpl *WeeklyTemplateEntry, override *DailyOverride) DayConfig {
	if override != nil {
		cfg := DayConfig{
			Date:           date,
			IsWorkingDay:   override.IsWorkingDay,
			MaxSlotsPerDay: override.MaxSlotsPerDay,
		}
		if override.StartTime != nil {
			cfg.StartTime = *override.StartTime
		}
		if override.EndTime != nil {
			cfg.EndTime = *override.EndTime
		}
		// override without explicit hours keeps the template hours for the day
		if tpl != nil {
			if override.StartTime == nil {
				cfg.StartTime = tpl.StartTime
			}
			if override.EndTime == nil {
				cfg.EndTime = tpl.EndTime
			}
		}
		return cfg
	}

	if tpl == nil {
		return DayConfig{Date: date, IsWorkingDay: false}
	}

	return DayConfig{
		Date:           date,
		IsWorkingDay:   tpl.IsWorkingDay,
		MaxSlotsPerDay: tpl.MaxSlotsPerDay,
		StartTime:      tpl.StartTime,
		EndTime:        tpl.EndTime,
	}
}
