package schedule_overrides

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/salon/models"
)

type SalonService interface {
	ListOverrides(ctx context.Context, salonID int64, from, to string) (*models.OverrideListResponse, error)
	SetOverrides(ctx context.Context, req *models.SetOverridesRequest) (*models.OverrideListResponse, error)
	DeleteOverride(ctx context.Context, salonID int64, userID int64, date string) error
	ApplyShiftPattern(ctx context.Context, req *models.ShiftPatternRequest) (*models.OverrideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
