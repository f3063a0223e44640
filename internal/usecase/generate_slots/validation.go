package generate_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// slotBounds границы одного слота
type slotBounds struct {
	start types.TimeString
	end   types.TimeString
}

// validateRequest валидирует диапазон дат генерации
func validateRequest(req *Request, horizonDays int) error {
	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidRange
	}

	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > horizonDays {
		return fmt.Errorf("%w: %d days requested, %d allowed", ErrRangeTooWide, days, horizonDays)
	}

	return nil
}

// splitWorkingHours равномерно делит [start, end) на slotCount слотов
// Остаток минут от целочисленного деления уходит в последний слот
func splitWorkingHours(start, end types.TimeString, slotCount int) ([]slotBounds, error) {
	total, err := start.MinutesUntil(end)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid working hours: %v", ErrInvalidInput, err)
	}

	if total < slotCount {
		return nil, fmt.Errorf("%w: working hours shorter than slot count", ErrInvalidInput)
	}

	width := total / slotCount
	bounds := make([]slotBounds, 0, slotCount)

	cursor := start
	for i := 0; i < slotCount; i++ {
		slotEnd := end
		if i < slotCount-1 {
			slotEnd, err = cursor.AddMinutes(width)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to build slot bounds: %v", ErrInternal, err)
			}
		}

		bounds = append(bounds, slotBounds{start: cursor, end: slotEnd})
		cursor = slotEnd
	}

	return bounds, nil
}
