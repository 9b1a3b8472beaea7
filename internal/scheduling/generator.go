package scheduling

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// GenerateSlots строит сетку кандидатов от начала окна с шагом intervalMinutes
// Слот ровно в момент закрытия и позже не выдается
func GenerateSlots(window domain.WorkWindow, intervalMinutes int) []types.TimeOfDay {
	if window.IsClosed() {
		return nil
	}
	if intervalMinutes <= 0 {
		intervalMinutes = domain.DefaultSlotIntervalMinutes
	}

	slots := make([]types.TimeOfDay, 0, (window.End.Minutes()-window.Start.Minutes())/intervalMinutes+1)
	for s := window.Start; s.IsBefore(window.End); s = s.AddMinutes(intervalMinutes) {
		slots = append(slots, s)
	}
	return slots
}

// FormatSlots переводит слоты в строки "HH:MM"
func FormatSlots(slots []types.TimeOfDay) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.String()
	}
	return result
}
