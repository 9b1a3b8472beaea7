package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
}

// SalonRepository интерфейс репозитория настроек салона
type SalonRepository interface {
	GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
	GetOverrides(ctx context.Context, salonID int64, from, to time.Time) (domain.ScheduleOverrides, error)
}

// CatalogClient интерфейс клиента каталога салонов
type CatalogClient interface {
	GetServices(ctx context.Context, salonID int64, serviceIDs []int64, lang string) ([]domain.Service, error)
	GetMasters(ctx context.Context, salonID int64) ([]domain.Master, error)
}

// MetricsRecorder интерфейс для учета запросов слотов
type MetricsRecorder interface {
	IncSlotQuery(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
