package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Assignment результат выбора мастера по кругу
type Assignment struct {
	Master   domain.Master
	Index    int  // новое значение курсора ротации
	Fallback bool // все мастера заняты в это время, выбран следующий по очереди
}

// SelectNext выбирает следующего свободного мастера начиная с (cursor+1) mod n
//
// Свободным считается мастер без активного бронирования ровно на date+at.
// Если свободных нет, возвращается мастер на исходной следующей позиции с Fallback=true.
// Пустой пул дает ok=false.
func SelectNext(pool []domain.Master, date time.Time, at types.TimeOfDay, cursor int, bookings []*domain.Booking) (Assignment, bool) {
	n := len(pool)
	if n == 0 {
		return Assignment{}, false
	}

	start := 0
	if cursor >= 0 {
		start = (cursor + 1) % n
	}

	taken := make(map[int64]struct{})
	for _, b := range bookings {
		if b == nil || !b.IsActive() || b.MasterID == nil {
			continue
		}
		if sameDate(b.BookingDate, date) && b.StartTime == at {
			taken[*b.MasterID] = struct{}{}
		}
	}

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if _, busy := taken[pool[idx].ID]; !busy {
			return Assignment{Master: pool[idx], Index: idx}, true
		}
	}

	return Assignment{Master: pool[start], Index: start, Fallback: true}, true
}

// MasterIDs возвращает идентификаторы мастеров пула
func MasterIDs(pool []domain.Master) []int64 {
	ids := make([]int64, len(pool))
	for i, m := range pool {
		ids[i] = m.ID
	}
	return ids
}

// ActiveMasters исключает уволенных мастеров, сохраняя порядок ротации
func ActiveMasters(masters []domain.Master) []domain.Master {
	result := make([]domain.Master, 0, len(masters))
	for _, m := range masters {
		if m.IsActive() {
			result = append(result, m)
		}
	}
	return result
}
