package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceId is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate serviceId %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.MasterID != nil && *req.MasterID <= 0 {
		return fmt.Errorf("%w: masterId must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %w", ErrInvalidInput, err)
	}

	if scheduling.NormalizePhone(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName must not exceed %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// findMaster ищет активного мастера салона по ID
func findMaster(masterID int64, masters []domain.Master) (domain.Master, bool) {
	for _, m := range masters {
		if m.ID == masterID && m.IsActive() {
			return m, true
		}
	}
	return domain.Master{}, false
}

// isStaff проверяет, что пользователь менеджер или мастер салона
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

// summarizeServices суммирует длительность и стоимость услуг
func summarizeServices(services []domain.Service) ([]ServiceItem, int, float64) {
	items := make([]ServiceItem, 0, len(services))
	duration := 0
	price := 0.0
	for _, s := range services {
		items = append(items, ServiceItem{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
		duration += s.DurationMinutes
		price += s.Price
	}
	return items, duration, price
}
