package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes  = 30
	DefaultBufferMinutes        = 0
	DefaultBookingHorizonMonths = 0 // 0 = unlimited
	DefaultTimezone             = "Europe/Moscow"
)

// Client fraud policy
const (
	// MaxOpenClientBookings a new booking is rejected once the client has this many open bookings
	MaxOpenClientBookings = 3
	// SuspiciousOpenClientBookings a new booking is flagged once the client has this many open bookings
	SuspiciousOpenClientBookings = 2
)

// Business validation constants
const (
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 240
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 120
	MinBookingHorizonMonths     = 0
	MaxBookingHorizonMonths     = 24
	MaxServicesPerBooking       = 10
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxClientNameLength         = 100
	MaxShiftPatternDays         = 366
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses that never occupy time in the schedule
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// OpenStatuses statuses counted by the client booking limit
var OpenStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
