package reschedule_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %w", ErrInvalidInput, err)
	}

	if req.MasterID != nil && *req.MasterID <= 0 {
		return fmt.Errorf("%w: masterId must be positive", ErrInvalidInput)
	}

	return nil
}

// isStaff проверяет, что пользователь менеджер салона или активный мастер
func isStaff(userID int64, salon *domain.Salon, masters []domain.Master) bool {
	if salon.IsManager(userID) {
		return true
	}
	for _, m := range masters {
		if m.UserID == userID && m.IsActive() {
			return true
		}
	}
	return false
}

// findActiveMaster ищет активного мастера салона по ID
func findActiveMaster(masterID int64, masters []domain.Master) bool {
	for _, m := range masters {
		if m.ID == masterID && m.IsActive() {
			return true
		}
	}
	return false
}

// withoutBooking исключает переносимое бронирование из занятости дня
func withoutBooking(bookings []*domain.Booking, id int64) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			result = append(result, b)
		}
	}
	return result
}
