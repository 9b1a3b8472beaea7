package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, completedAt *time.Time) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// SalonRepository интерфейс репозитория настроек салона (буфер и часовой пояс для проверки пересечений)
type SalonRepository interface {
	GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
