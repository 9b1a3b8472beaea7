package create_booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Booking) *domain.Booking); ok {
		return fn(ctx, booking), args.Error(1)
	}
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetOpenByClientPhone(ctx context.Context, salonID int64, phone string) ([]*domain.Booking, error) {
	args := m.Called(ctx, salonID, phone)
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

func (m *mockSalonRepo) SaveCursor(ctx context.Context, settings *domain.SalonSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error) {
	args := m.Called(ctx, salonID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Salon), args.Error(1)
	}
	return nil, args.Error(1)
}

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

// inlineTx выполняет функцию без реальной транзакции
type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// retryingTx повторяет функцию при конфликте сериализации, как настоящий менеджер
type retryingTx struct {
	maxRetries int
	attempts   int
	active     bool
}

func (r *retryingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		r.attempts++
		r.active = true
		err = fn(ctx)
		r.active = false
		if !txmanager.IsSerializationFailure(err) {
			return err
		}
	}
	return err
}

type recordedMetrics struct {
	created     []string
	rejected    []string
	assignments []string
}

func (r *recordedMetrics) IncBookingCreated(assignment, status string) {
	r.created = append(r.created, assignment+"/"+status)
}

func (r *recordedMetrics) IncBookingRejected(reason string) {
	r.rejected = append(r.rejected, reason)
}

func (r *recordedMetrics) IncMasterAssignment(result string) {
	r.assignments = append(r.assignments, result)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
