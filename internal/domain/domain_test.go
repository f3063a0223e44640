package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func TestSlot_Availability(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		want SlotAvailability
	}{
		{name: "free slot", slot: Slot{MaxBookings: 2, CurrentBookings: 0}, want: SlotAvailable},
		{name: "partially booked", slot: Slot{MaxBookings: 2, CurrentBookings: 1}, want: SlotAvailable},
		{name: "full", slot: Slot{MaxBookings: 2, CurrentBookings: 2}, want: SlotFull},
		{name: "blocked wins over free", slot: Slot{MaxBookings: 2, CurrentBookings: 0, IsBlocked: true}, want: SlotBlocked},
		{name: "blocked wins over full", slot: Slot{MaxBookings: 1, CurrentBookings: 1, IsBlocked: true}, want: SlotBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Availability())
		})
	}
}

func TestSlot_CanAcceptBooking(t *testing.T) {
	assert.True(t, (&Slot{MaxBookings: 1}).CanAcceptBooking())
	assert.False(t, (&Slot{MaxBookings: 1, CurrentBookings: 1}).CanAcceptBooking())
	assert.False(t, (&Slot{MaxBookings: 1, IsBlocked: true}).CanAcceptBooking())
}

func TestBooking_Transitions(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanRequestReschedule())
	assert.True(t, (&Booking{Status: StatusPending}).CanRequestReschedule())
	assert.False(t, (&Booking{Status: StatusRescheduleRequested}).CanRequestReschedule())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanRequestReschedule())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanRequestReschedule())

	assert.True(t, (&Booking{Status: StatusRescheduleRequested}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())

	assert.True(t, (&Booking{Status: StatusInProgress}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestWeeklyTemplateEntry_Validate(t *testing.T) {
	valid := WeeklyTemplateEntry{
		DayOfWeek:      1,
		IsWorkingDay:   true,
		MaxSlotsPerDay: 5,
		StartTime:      "09:00",
		EndTime:        "18:00",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(e *WeeklyTemplateEntry)
		wantErr error
	}{
		{name: "day out of range", mutate: func(e *WeeklyTemplateEntry) { e.DayOfWeek = 7 }, wantErr: ErrInvalidDayOfWeek},
		{name: "negative day", mutate: func(e *WeeklyTemplateEntry) { e.DayOfWeek = -1 }, wantErr: ErrInvalidDayOfWeek},
		{name: "non-working with slots", mutate: func(e *WeeklyTemplateEntry) { e.IsWorkingDay = false }, wantErr: ErrNonWorkingDayWithSlots},
		{name: "zero slots on working day", mutate: func(e *WeeklyTemplateEntry) { e.MaxSlotsPerDay = 0 }, wantErr: ErrInvalidSlotCount},
		{name: "end before start", mutate: func(e *WeeklyTemplateEntry) { e.StartTime, e.EndTime = "18:00", "09:00" }, wantErr: ErrInvalidWorkingHours},
		{name: "equal bounds", mutate: func(e *WeeklyTemplateEntry) { e.EndTime = "09:00" }, wantErr: ErrInvalidWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			assert.ErrorIs(t, e.Validate(), tt.wantErr)
		})
	}

	nonWorking := WeeklyTemplateEntry{DayOfWeek: 0, IsWorkingDay: false, MaxSlotsPerDay: 0}
	assert.NoError(t, nonWorking.Validate())
}

func TestDailyOverride_Validate(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	closed := DailyOverride{Date: date, IsWorkingDay: false}
	assert.NoError(t, closed.Validate())

	reduced := DailyOverride{Date: date, IsWorkingDay: true, MaxSlotsPerDay: 2}
	assert.NoError(t, reduced.Validate())

	badHours := DailyOverride{
		Date:           date,
		IsWorkingDay:   true,
		MaxSlotsPerDay: 2,
		StartTime:      ptr.Ptr(types.TimeString("18:00")),
		EndTime:        ptr.Ptr(types.TimeString("09:00")),
	}
	assert.ErrorIs(t, badHours.Validate(), ErrInvalidWorkingHours)

	assert.ErrorIs(t, (&DailyOverride{IsWorkingDay: true, MaxSlotsPerDay: 1}).Validate(), ErrInvalidDate)
}

func TestResolveDayConfig(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	tpl := &WeeklyTemplateEntry{
		DayOfWeek:      2,
		IsWorkingDay:   true,
		MaxSlotsPerDay: 5,
		StartTime:      "09:00",
		EndTime:        "19:00",
	}

	t.Run("template only", func(t *testing.T) {
		cfg := ResolveDayConfig(date, tpl, nil)
		assert.True(t, cfg.IsWorkingDay)
		assert.Equal(t, 5, cfg.MaxSlotsPerDay)
		assert.Equal(t, types.TimeString("09:00"), cfg.StartTime)
	})

	t.Run("override supersedes capacity, keeps template hours", func(t *testing.T) {
		ov := &DailyOverride{Date: date, IsWorkingDay: true, MaxSlotsPerDay: 2}
		cfg := ResolveDayConfig(date, tpl, ov)
		assert.Equal(t, 2, cfg.MaxSlotsPerDay)
		assert.Equal(t, types.TimeString("09:00"), cfg.StartTime)
		assert.Equal(t, types.TimeString("19:00"), cfg.EndTime)
	})

	t.Run("override with own hours", func(t *testing.T) {
		ov := &DailyOverride{
			Date:           date,
			IsWorkingDay:   true,
			MaxSlotsPerDay: 3,
			StartTime:      ptr.Ptr(types.TimeString("12:00")),
			EndTime:        ptr.Ptr(types.TimeString("15:00")),
		}
		cfg := ResolveDayConfig(date, tpl, ov)
		assert.Equal(t, types.TimeString("12:00"), cfg.StartTime)
		assert.Equal(t, types.TimeString("15:00"), cfg.EndTime)
	})

	t.Run("closed override", func(t *testing.T) {
		ov := &DailyOverride{Date: date, IsWorkingDay: false}
		cfg := ResolveDayConfig(date, tpl, ov)
		assert.False(t, cfg.IsWorkingDay)
		assert.Zero(t, cfg.MaxSlotsPerDay)
	})

	t.Run("no template, no override", func(t *testing.T) {
		cfg := ResolveDayConfig(date, nil, nil)
		assert.False(t, cfg.IsWorkingDay)
	})
}

func TestRescheduleRequest_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	pending := RescheduleRequest{Status: RescheduleStatusPending, ExpiresAt: now.Add(-time.Second)}
	assert.True(t, pending.IsOverdue(now))

	fresh := RescheduleRequest{Status: RescheduleStatusPending, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, fresh.IsOverdue(now))

	// terminal requests never expire again
	approved := RescheduleRequest{Status: RescheduleStatusApproved, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, approved.IsOverdue(now))
	assert.True(t, approved.IsTerminal())
}
