package domain

import "time"

// SalonSettings scheduling configuration of a salon
type SalonSettings struct {
	SalonID              int64
	ScheduleMode         ScheduleMode
	WeeklySchedule       WeeklySchedule
	ShiftDefaults        ShiftPatternDefaults
	SlotIntervalMinutes  int
	BufferMinutes        int
	BookingHorizonMonths int // 0 = unlimited
	AllowUnassigned      bool
	Timezone             string

	// LastAssignedMasterIndex rotation cursor of round-robin assignment
	LastAssignedMasterIndex int

	UpdatedAt time.Time
}

// DefaultSettings returns the configuration used before the salon saves its own
func DefaultSettings(salonID int64) *SalonSettings {
	return &SalonSettings{
		SalonID:      salonID,
		ScheduleMode: ScheduleModeWeekly,
		WeeklySchedule: WeeklySchedule{
			Monday:    {Start: "10:00", End: "20:00"},
			Tuesday:   {Start: "10:00", End: "20:00"},
			Wednesday: {Start: "10:00", End: "20:00"},
			Thursday:  {Start: "10:00", End: "20:00"},
			Friday:    {Start: "10:00", End: "20:00"},
			Saturday:  {Start: "10:00", End: "18:00"},
		},
		ShiftDefaults: ShiftPatternDefaults{
			WorkHours: DayHours{Start: "10:00", End: "20:00"},
		},
		SlotIntervalMinutes:     DefaultSlotIntervalMinutes,
		BufferMinutes:           DefaultBufferMinutes,
		BookingHorizonMonths:    DefaultBookingHorizonMonths,
		AllowUnassigned:         false,
		Timezone:                DefaultTimezone,
		LastAssignedMasterIndex: -1,
	}
}

// Location returns the salon time zone, UTC if unknown
func (s *SalonSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HasBookingHorizon returns true if clients may only book a limited time ahead
func (s *SalonSettings) HasBookingHorizon() bool {
	return s.BookingHorizonMonths > 0
}

// MasterStatus employment status of a master
type MasterStatus string

const (
	MasterActive     MasterStatus = "active"
	MasterTerminated MasterStatus = "terminated"
)

// Master schedulable staff member
type Master struct {
	ID     int64
	UserID int64
	Name   string
	Status MasterStatus
}

// IsActive returns true if the master can receive bookings
func (m Master) IsActive() bool {
	return m.Status == MasterActive
}

// Service salon service with resolved display name
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
}

// Salon data of the salon needed for access checks
type Salon struct {
	ID         int64
	Name       string
	ManagerIDs []int64
}

// IsManager returns true if the user manages the salon
func (s *Salon) IsManager(userID int64) bool {
	for _, id := range s.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
