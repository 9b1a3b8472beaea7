package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ScheduleMode defines where working hours come from
type ScheduleMode string

const (
	// ScheduleModeWeekly recurring per-weekday schedule, overridable per date
	ScheduleModeWeekly ScheduleMode = "weekly"
	// ScheduleModeShift only explicit date overrides define working days
	ScheduleModeShift ScheduleMode = "shift"
)

// IsValid returns true if the mode is known
func (m ScheduleMode) IsValid() bool {
	return m == ScheduleModeWeekly || m == ScheduleModeShift
}

// Weekday named weekday key used in the weekly schedule
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// weekdays indexed by time.Weekday (Sunday = 0)
var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the named weekday of the calendar date
func WeekdayOf(date time.Time) Weekday {
	return weekdays[date.Weekday()]
}

// AllWeekdays returns weekday keys starting from Monday
func AllWeekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// DayHours raw "HH:MM" working hours; empty start or end means day off
type DayHours struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// IsEmpty returns true if either bound is missing
func (h DayHours) IsEmpty() bool {
	return strings.TrimSpace(h.Start) == "" || strings.TrimSpace(h.End) == ""
}

// BreakHours raw "HH:MM" break as configured by the salon
type BreakHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklySchedule recurring hours by weekday
type WeeklySchedule map[Weekday]DayHours

// ScheduleOverride exception to the weekly schedule for one date
type ScheduleOverride struct {
	Date      string       `json:"date"` // YYYY-MM-DD
	IsWorking bool         `json:"isWorking"`
	Start     string       `json:"start,omitempty"`
	End       string       `json:"end,omitempty"`
	Breaks    []BreakHours `json:"breaks,omitempty"`
}

// ScheduleOverrides overrides keyed by ISO date
type ScheduleOverrides map[string]ScheduleOverride

// ForDate returns the override for the calendar date
func (o ScheduleOverrides) ForDate(date time.Time) (ScheduleOverride, bool) {
	ov, ok := o[date.Format(DateFormat)]
	return ov, ok
}

// ShiftPatternDefaults hours used for shift-mode overrides that omit start or end
type ShiftPatternDefaults struct {
	WorkHours DayHours `json:"workHours"`
}

// ShiftPattern repeating work/off-day cycle used to bulk-generate overrides
type ShiftPattern struct {
	StartDate time.Time
	Days      int // сколько дней сгенерировать начиная со StartDate
	WorkDays  int
	OffDays   int
	Hours     DayHours
	Breaks    []BreakHours
}

// BreakInterval resolved break inside a work window
type BreakInterval struct {
	Start types.TimeOfDay
	End   types.TimeOfDay
}

// WorkWindow resolved open hours for one date
// Open == false means the salon does not work that day
type WorkWindow struct {
	Start  types.TimeOfDay
	End    types.TimeOfDay
	Breaks []BreakInterval
	Open   bool
}

// ClosedWindow returns a window with no hours
func ClosedWindow() WorkWindow {
	return WorkWindow{}
}

// IsClosed returns true if the window has no bookable hours
func (w WorkWindow) IsClosed() bool {
	return !w.Open || !w.Start.IsBefore(w.End)
}
