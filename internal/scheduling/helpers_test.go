package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// monday 2025-10-13
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func tod(s string) types.TimeOfDay {
	return types.MustTimeOfDay(s)
}

func slots(values ...string) []types.TimeOfDay {
	result := make([]types.TimeOfDay, len(values))
	for i, v := range values {
		result[i] = tod(v)
	}
	return result
}

func openWindow(start, end string, breaks ...domain.BreakInterval) domain.WorkWindow {
	return domain.WorkWindow{Start: tod(start), End: tod(end), Breaks: breaks, Open: true}
}

func booking(id int64, masterID *int64, start string, duration int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		BookingDate:   monday,
		StartTime:     tod(start),
		TotalDuration: duration,
		MasterID:      masterID,
		Status:        status,
	}
}

func master(id int64) *int64 {
	return ptr.Ptr(id)
}

func contains(list []types.TimeOfDay, v types.TimeOfDay) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
