package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

func TestResolveWorkWindow_Weekly(t *testing.T) {
	weekly := domain.WeeklySchedule{
		domain.Monday: {Start: "10:00", End: "20:00"},
		domain.Sunday: {},
	}

	t.Run("weekday hours", func(t *testing.T) {
		w := ResolveWorkWindow(monday, domain.ScheduleModeWeekly, weekly, nil, domain.ShiftPatternDefaults{})
		assert.False(t, w.IsClosed())
		assert.Equal(t, tod("10:00"), w.Start)
		assert.Equal(t, tod("20:00"), w.End)
		assert.Empty(t, w.Breaks)
	})

	t.Run("day off", func(t *testing.T) {
		sunday := monday.AddDate(0, 0, -1)
		w := ResolveWorkWindow(sunday, domain.ScheduleModeWeekly, weekly, nil, domain.ShiftPatternDefaults{})
		assert.True(t, w.IsClosed())

		tuesday := monday.AddDate(0, 0, 1)
		w = ResolveWorkWindow(tuesday, domain.ScheduleModeWeekly, weekly, nil, domain.ShiftPatternDefaults{})
		assert.True(t, w.IsClosed())
	})

	t.Run("override replaces the day", func(t *testing.T) {
		overrides := domain.ScheduleOverrides{
			"2025-10-13": {IsWorking: true, Start: "12:00", End: "16:00", Breaks: []domain.BreakHours{{Start: "13:00", End: "13:30"}}},
		}
		w := ResolveWorkWindow(monday, domain.ScheduleModeWeekly, weekly, overrides, domain.ShiftPatternDefaults{})
		assert.Equal(t, tod("12:00"), w.Start)
		assert.Equal(t, tod("16:00"), w.End)
		assert.Equal(t, []domain.BreakInterval{{Start: tod("13:00"), End: tod("13:30")}}, w.Breaks)
	})

	t.Run("holiday override", func(t *testing.T) {
		overrides := domain.ScheduleOverrides{"2025-10-13": {IsWorking: false}}
		w := ResolveWorkWindow(monday, domain.ScheduleModeWeekly, weekly, overrides, domain.ShiftPatternDefaults{})
		assert.True(t, w.IsClosed())
	})

	t.Run("working override without hours does not fall back to weekly", func(t *testing.T) {
		overrides := domain.ScheduleOverrides{"2025-10-13": {IsWorking: true}}
		w := ResolveWorkWindow(monday, domain.ScheduleModeWeekly, weekly, overrides, domain.ShiftPatternDefaults{WorkHours: domain.DayHours{Start: "09:00", End: "18:00"}})
		assert.True(t, w.IsClosed())
	})
}

func TestResolveWorkWindow_Shift(t *testing.T) {
	weekly := domain.WeeklySchedule{domain.Monday: {Start: "10:00", End: "20:00"}}
	defaults := domain.ShiftPatternDefaults{WorkHours: domain.DayHours{Start: "09:00", End: "21:00"}}

	t.Run("no override means closed regardless of weekly schedule", func(t *testing.T) {
		w := ResolveWorkWindow(monday, domain.ScheduleModeShift, weekly, domain.ScheduleOverrides{}, defaults)
		assert.True(t, w.IsClosed())
		assert.Empty(t, GenerateSlots(w, 30))
	})

	t.Run("not working", func(t *testing.T) {
		overrides := domain.ScheduleOverrides{"2025-10-13": {IsWorking: false, Start: "10:00", End: "12:00"}}
		assert.True(t, ResolveWorkWindow(monday, domain.ScheduleModeShift, weekly, overrides, defaults).IsClosed())
	})

	t.Run("missing hours fall back to defaults", func(t *testing.T) {
		overrides := domain.ScheduleOverrides{"2025-10-13": {IsWorking: true, End: "15:00"}}
		w := ResolveWorkWindow(monday, domain.ScheduleModeShift, weekly, overrides, defaults)
		assert.Equal(t, tod("09:00"), w.Start)
		assert.Equal(t, tod("15:00"), w.End)
	})
}

func TestResolveWorkWindow_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		hours domain.DayHours
	}{
		{name: "start after end", hours: domain.DayHours{Start: "20:00", End: "10:00"}},
		{name: "start equals end", hours: domain.DayHours{Start: "10:00", End: "10:00"}},
		{name: "garbage", hours: domain.DayHours{Start: "ten", End: "20:00"}},
		{name: "out of range", hours: domain.DayHours{Start: "10:00", End: "25:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weekly := domain.WeeklySchedule{domain.Monday: tt.hours}
			assert.NotPanics(t, func() {
				w := ResolveWorkWindow(monday, domain.ScheduleModeWeekly, weekly, nil, domain.ShiftPatternDefaults{})
				assert.True(t, w.IsClosed())
			})
		})
	}

	t.Run("bad breaks are dropped", func(t *testing.T) {
		overrides := domain.ScheduleOverrides{
			"2025-10-13": {IsWorking: true, Start: "10:00", End: "20:00", Breaks: []domain.BreakHours{
				{Start: "14:00", End: "13:00"},
				{Start: "noon", End: "13:00"},
				{Start: "15:00", End: "15:15"},
			}},
		}
		w := ResolveWorkWindow(monday, domain.ScheduleModeWeekly, nil, overrides, domain.ShiftPatternDefaults{})
		assert.Equal(t, []domain.BreakInterval{{Start: tod("15:00"), End: tod("15:15")}}, w.Breaks)
	})
}
