package scheduling

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ResolveWorkWindow определяет рабочее окно салона на дату
//
// В режиме shift источником истины являются только исключения: нет записи
// или isWorking=false означает выходной, недостающие start/end берутся из defaults.
// В режиме weekly исключение полностью заменяет день, иначе используется недельное расписание.
// Некорректные часы дают закрытый день, некорректные перерывы отбрасываются.
func ResolveWorkWindow(
	date time.Time,
	mode domain.ScheduleMode,
	weekly domain.WeeklySchedule,
	overrides domain.ScheduleOverrides,
	defaults domain.ShiftPatternDefaults,
) domain.WorkWindow {
	override, hasOverride := overrides.ForDate(date)

	if mode == domain.ScheduleModeShift {
		if !hasOverride || !override.IsWorking {
			return domain.ClosedWindow()
		}

		hours := domain.DayHours{Start: override.Start, End: override.End}
		if strings.TrimSpace(hours.Start) == "" {
			hours.Start = defaults.WorkHours.Start
		}
		if strings.TrimSpace(hours.End) == "" {
			hours.End = defaults.WorkHours.End
		}
		return buildWindow(hours, override.Breaks)
	}

	if hasOverride {
		if !override.IsWorking {
			return domain.ClosedWindow()
		}
		return buildWindow(domain.DayHours{Start: override.Start, End: override.End}, override.Breaks)
	}

	return buildWindow(weekly[domain.WeekdayOf(date)], nil)
}

func buildWindow(hours domain.DayHours, breaks []domain.BreakHours) domain.WorkWindow {
	if hours.IsEmpty() {
		return domain.ClosedWindow()
	}

	start, err := types.ParseTimeOfDay(hours.Start)
	if err != nil {
		return domain.ClosedWindow()
	}
	end, err := types.ParseTimeOfDay(hours.End)
	if err != nil {
		return domain.ClosedWindow()
	}
	if !start.IsBefore(end) {
		return domain.ClosedWindow()
	}

	return domain.WorkWindow{
		Start:  start,
		End:    end,
		Breaks: parseBreaks(breaks),
		Open:   true,
	}
}

func parseBreaks(raw []domain.BreakHours) []domain.BreakInterval {
	if len(raw) == 0 {
		return nil
	}

	result := make([]domain.BreakInterval, 0, len(raw))
	for _, b := range raw {
		start, err := types.ParseTimeOfDay(b.Start)
		if err != nil {
			continue
		}
		end, err := types.ParseTimeOfDay(b.End)
		if err != nil {
			continue
		}
		if !start.IsBefore(end) {
			continue
		}
		result = append(result, domain.BreakInterval{Start: start, End: end})
	}
	return result
}
