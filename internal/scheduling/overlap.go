package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// interval полуинтервал [start, end) в минутах от полуночи
type interval struct {
	start types.TimeOfDay
	end   types.TimeOfDay
}

func (i interval) overlaps(other interval) bool {
	return i.start.IsBefore(other.end) && i.end.IsAfter(other.start)
}

// occupied занятость времени одним бронированием
type occupied struct {
	bookingID int64
	masterID  *int64
	span      interval
}

// blocks сообщает, мешает ли бронирование мастеру masterID
// Бронирование без мастера блокирует всех
func (o occupied) blocks(masterID int64) bool {
	return o.masterID == nil || *o.masterID == masterID
}

// EffectiveDuration длительность, в течение которой бронирование занимает мастера
// Для завершенного бронирования с фактическим временем окончания в тот же день
// используется min(плановая длительность, фактически прошедшие минуты)
func EffectiveDuration(b *domain.Booking, loc *time.Location) int {
	duration := b.TotalDuration
	if b.Status != domain.StatusCompleted || b.CompletedAt == nil {
		return duration
	}
	if loc == nil {
		loc = time.UTC
	}

	start := b.StartTime.On(b.BookingDate, loc)
	finished := b.CompletedAt.In(loc)
	if !sameDate(start, finished) {
		return duration
	}

	elapsed := int(finished.Sub(start) / time.Minute)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed < duration {
		return elapsed
	}
	return duration
}

// occupiedOn собирает занятость активных бронирований на дату
func occupiedOn(date time.Time, bookings []*domain.Booking, bufferMinutes int, loc *time.Location) []occupied {
	result := make([]occupied, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() || !sameDate(b.BookingDate, date) {
			continue
		}
		result = append(result, occupied{
			bookingID: b.ID,
			masterID:  b.MasterID,
			span: interval{
				start: b.StartTime,
				end:   b.StartTime.AddMinutes(EffectiveDuration(b, loc) + bufferMinutes),
			},
		})
	}
	return result
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
