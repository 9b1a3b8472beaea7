package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	catalogClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/scheduling"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	salonRepo     SalonRepository
	catalogClient CatalogClient
	metrics       MetricsRecorder
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	catalogClient CatalogClient,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		salonRepo:     salonRepo,
		catalogClient: catalogClient,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, salon=%d, services=%v, date=%s",
		req.UserID, req.SalonID, req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки салона (если не сохранены, используем дефолтные)
	settings, err := uc.salonRepo.GetSettings(ctx, req.SalonID)
	if err != nil {
		if !errors.Is(err, salonRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings for salon=%d: %v", req.SalonID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.SalonID)
		uc.logger.Info("GetAvailableSlots: using default settings for salon=%d", req.SalonID)
	}

	// 4. Проверяем горизонт бронирования
	if !scheduling.WithinHorizon(req.Date, now, settings.BookingHorizonMonths, settings.Location()) {
		uc.logger.Warn("GetAvailableSlots: date %s is beyond %d months horizon",
			req.Date.Format(domain.DateFormat), settings.BookingHorizonMonths)
		return nil, fmt.Errorf("%w: can only book %d months in advance", ErrDateTooFarInFuture, settings.BookingHorizonMonths)
	}

	// 5. Получаем услуги и считаем суммарную длительность
	services, err := uc.catalogClient.GetServices(ctx, req.SalonID, req.ServiceIDs, req.Lang)
	if err != nil {
		return nil, uc.mapCatalogError("get services", err)
	}
	duration := totalDuration(services)

	// 6. Получаем мастеров салона
	masters, err := uc.catalogClient.GetMasters(ctx, req.SalonID)
	if err != nil {
		return nil, uc.mapCatalogError("get masters", err)
	}
	if err := validateMaster(req.MasterID, masters); err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 7. Получаем исключения из расписания на дату
	overrides, err := uc.salonRepo.GetOverrides(ctx, req.SalonID, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get overrides: %w", ErrInternal, err)
	}

	// 8. Получаем активные бронирования салона на дату
	bookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, domain.SalonBookingsFilter{
		SalonID:   req.SalonID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 9. Считаем слоты
	state := scheduling.NewSchedulingState(settings, overrides, bookings, masters)
	result := state.AvailableSlots(scheduling.SlotQuery{
		Date:            req.Date,
		ServiceDuration: duration,
		MasterID:        req.MasterID,
		Now:             now,
	})

	if uc.metrics != nil {
		uc.metrics.IncSlotQuery(string(result.Outcome))
	}

	uc.logger.Info("GetAvailableSlots: %d slots (%s) for salon=%d, date=%s, duration=%d",
		len(result.Slots), result.Outcome, req.SalonID, req.Date.Format(domain.DateFormat), duration)

	resp := &Response{
		Date:            req.Date,
		SalonID:         req.SalonID,
		MasterID:        req.MasterID,
		DurationMinutes: duration,
		Outcome:         string(result.Outcome),
		Slots:           result.Slots,
	}
	if !result.Window.IsClosed() {
		resp.WorkStart = ptr.Ptr(result.Window.Start)
		resp.WorkEnd = ptr.Ptr(result.Window.End)
	}

	return resp, nil
}

func (uc *UseCase) mapCatalogError(op string, err error) error {
	switch {
	case errors.Is(err, catalogClient.ErrSalonNotFound):
		uc.logger.Warn("GetAvailableSlots: %s: salon not found", op)
		return ErrSalonNotFound
	case errors.Is(err, catalogClient.ErrServiceNotFound):
		uc.logger.Warn("GetAvailableSlots: %s: %v", op, err)
		return fmt.Errorf("%w: %w", ErrServiceNotFound, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to %s: %v", op, err)
		return fmt.Errorf("%w: failed to %s: %w", ErrInternal, op, err)
	}
}
