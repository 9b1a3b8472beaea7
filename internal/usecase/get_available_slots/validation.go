package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceId is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
	}

	if req.MasterID != nil && *req.MasterID <= 0 {
		return fmt.Errorf("%w: masterId must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateMaster проверяет, что мастер есть среди активных мастеров салона
func validateMaster(masterID *int64, masters []domain.Master) error {
	if masterID == nil {
		return nil
	}
	for _, m := range masters {
		if m.ID == *masterID && m.IsActive() {
			return nil
		}
	}
	return fmt.Errorf("%w: id=%d", ErrMasterNotFound, *masterID)
}

// totalDuration суммирует длительности выбранных услуг
func totalDuration(services []domain.Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}
