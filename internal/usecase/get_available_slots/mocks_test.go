package get_available_slots

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSalonRepo struct{ mock.Mock }

func (m *mockSalonRepo) GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error) {
	args := m.Called(ctx, salonID)
	if v := args.Get(0); v != nil {
		return v.(*domain.SalonSettings), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalonRepo) GetOverrides(ctx context.Context, salonID int64, from, to time.Time) (domain.ScheduleOverrides, error) {
	args := m.Called(ctx, salonID, from, to)
	if v := args.Get(0); v != nil {
		return v.(domain.ScheduleOverrides), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) GetServices(ctx context.Context, salonID int64, serviceIDs []int64, lang string) ([]domain.Service, error) {
	args := m.Called(ctx, salonID, serviceIDs, lang)
	if v := args.Get(0); v != nil {
		return v.([]domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) GetMasters(ctx context.Context, salonID int64) ([]domain.Master, error) {
	args := m.Called(ctx, salonID)
	if v := args.Get(0); v != nil {
		return v.([]domain.Master), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncSlotQuery(outcome string) {
	m.Called(outcome)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
