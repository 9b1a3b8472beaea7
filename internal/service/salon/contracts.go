package salon

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// SalonRepository интерфейс репозитория настроек и исключений расписания
type SalonRepository interface {
	GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.SalonSettings) (*domain.SalonSettings, error)
	GetOverrides(ctx context.Context, salonID int64, from, to time.Time) (domain.ScheduleOverrides, error)
	UpsertOverrides(ctx context.Context, salonID int64, overrides []domain.ScheduleOverride) error
	DeleteOverride(ctx context.Context, salonID int64, date time.Time) error
}

// CatalogClient интерфейс клиента каталога салонов
type CatalogClient interface {
	GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
