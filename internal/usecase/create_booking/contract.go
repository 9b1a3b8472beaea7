package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	GetOpenByClientPhone(ctx context.Context, salonID int64, phone string) ([]*domain.Booking, error)
}

// SalonRepository интерфейс репозитория настроек салона
type SalonRepository interface {
	GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
	GetOverrides(ctx context.Context, salonID int64, from, to time.Time) (domain.ScheduleOverrides, error)
	SaveCursor(ctx context.Context, settings *domain.SalonSettings) error
}

// CatalogClient интерфейс клиента каталога салонов
type CatalogClient interface {
	GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error)
	GetServices(ctx context.Context, salonID int64, serviceIDs []int64, lang string) ([]domain.Service, error)
	GetMasters(ctx context.Context, salonID int64) ([]domain.Master, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для учета созданных и отклоненных бронирований
type MetricsRecorder interface {
	IncBookingCreated(assignment, status string)
	IncBookingRejected(reason string)
	IncMasterAssignment(result string)
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
