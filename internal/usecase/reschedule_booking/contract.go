package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, date time.Time, start types.TimeOfDay, masterID *int64) error
}

// SalonRepository интерфейс репозитория настроек салона
type SalonRepository interface {
	GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
	GetOverrides(ctx context.Context, salonID int64, from, to time.Time) (domain.ScheduleOverrides, error)
}

// CatalogClient интерфейс клиента каталога салонов
type CatalogClient interface {
	GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error)
	GetMasters(ctx context.Context, salonID int64) ([]domain.Master, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
