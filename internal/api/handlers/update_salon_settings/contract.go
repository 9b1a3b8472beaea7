package update_salon_settings

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/salon/models"
)

type SalonService interface {
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
