package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// GenerateShiftPattern строит исключения расписания по циклу "N рабочих / M выходных"
func GenerateShiftPattern(p domain.ShiftPattern) (domain.ScheduleOverrides, error) {
	if p.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidShiftPattern)
	}
	if p.WorkDays < 1 || p.OffDays < 0 {
		return nil, fmt.Errorf("%w: workDays must be >= 1 and offDays >= 0", ErrInvalidShiftPattern)
	}
	if p.Days < 1 || p.Days > domain.MaxShiftPatternDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidShiftPattern, domain.MaxShiftPatternDays)
	}

	start, err := types.ParseTimeOfDay(p.Hours.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %w", ErrInvalidShiftPattern, err)
	}
	end, err := types.ParseTimeOfDay(p.Hours.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %w", ErrInvalidShiftPattern, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidShiftPattern)
	}

	cycle := p.WorkDays + p.OffDays
	overrides := make(domain.ScheduleOverrides, p.Days)

	for i := 0; i < p.Days; i++ {
		date := p.StartDate.AddDate(0, 0, i)
		key := date.Format(domain.DateFormat)

		if i%cycle >= p.WorkDays {
			overrides[key] = domain.ScheduleOverride{Date: key, IsWorking: false}
			continue
		}

		overrides[key] = domain.ScheduleOverride{
			Date:      key,
			IsWorking: true,
			Start:     start.String(),
			End:       end.String(),
			Breaks:    append([]domain.BreakHours(nil), p.Breaks...),
		}
	}

	return overrides, nil
}
