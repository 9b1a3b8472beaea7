package scheduling

import (
	"fmt"
	"regexp"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ValidateBooking повторно проверяет пересечения в момент фиксации бронирования
//
// Учитываются бронирования того же мастера и бронирования без мастера.
// Если мастер не назначен, проверяются все бронирования дня.
// Бронирование с тем же ID (перенос) игнорируется.
func ValidateBooking(proposed *domain.Booking, existing []*domain.Booking, bufferMinutes int, loc *time.Location) error {
	span := proposed.TotalDuration + bufferMinutes
	if span < 0 {
		span = 0
	}
	candidate := interval{start: proposed.StartTime, end: proposed.StartTime.AddMinutes(span)}

	for _, o := range occupiedOn(proposed.BookingDate, existing, bufferMinutes, loc) {
		if proposed.ID != 0 && o.bookingID == proposed.ID {
			continue
		}
		if proposed.MasterID != nil && !o.blocks(*proposed.MasterID) {
			continue
		}
		if candidate.overlaps(o.span) {
			return fmt.Errorf("%w: overlaps booking id=%d", ErrSlotTaken, o.bookingID)
		}
	}

	return nil
}

// ClientCheck результат проверки лимита записей клиента
type ClientCheck struct {
	OpenBookings int
	Suspicious   bool
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone оставляет в номере только цифры
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// CheckClientLimit применяет антифрод-политику к новой записи клиента
// 3 и более открытых записей: отказ, 2 и более: запись помечается подозрительной
func CheckClientLimit(phone string, bookings []*domain.Booking) (ClientCheck, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return ClientCheck{}, nil
	}

	var check ClientCheck
	for _, b := range bookings {
		if b == nil || !b.IsOpen() {
			continue
		}
		if NormalizePhone(b.ClientPhone) == normalized {
			check.OpenBookings++
		}
	}

	if check.OpenBookings >= domain.MaxOpenClientBookings {
		return check, fmt.Errorf("%w: client already has %d open bookings", ErrClientBookingLimitExceeded, check.OpenBookings)
	}
	check.Suspicious = check.OpenBookings >= domain.SuspiciousOpenClientBookings
	return check, nil
}
