package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBookingService/internal/scheduling"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// UseCase use case для переноса бронирования на другое время или другого мастера
type UseCase struct {
	bookingRepo   BookingRepository
	salonRepo     SalonRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		salonRepo:     salonRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет перенос бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: user=%d, booking=%d, date=%s, time=%s",
		req.UserID, req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Читаем бронирование для проверки прав
	current, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем права: владелец, менеджер салона или мастер салона
	salon, err := uc.catalogClient.GetSalon(ctx, current.SalonID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get salon id=%d: %v", current.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %w", ErrInternal, err)
	}
	masters, err := uc.catalogClient.GetMasters(ctx, current.SalonID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get masters: %v", err)
		return nil, fmt.Errorf("%w: failed to get masters: %w", ErrInternal, err)
	}

	staff := isStaff(req.UserID, salon, masters)
	if !staff && current.UserID != req.UserID {
		uc.logger.Warn("RescheduleBooking: user=%d has no access to booking=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// Переназначение мастера доступно только персоналу
	targetMaster := current.MasterID
	masterChanged := false
	if req.MasterID != nil && (current.MasterID == nil || *current.MasterID != *req.MasterID) {
		if !staff {
			return nil, fmt.Errorf("%w: only salon staff can reassign a booking", ErrAccessDenied)
		}
		if !findActiveMaster(*req.MasterID, masters) {
			return nil, fmt.Errorf("%w: id=%d", ErrMasterNotFound, *req.MasterID)
		}
		targetMaster = req.MasterID
		masterChanged = true
	}

	var result *domain.Booking

	// 4. Проверка и перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Повторно читаем бронирование с блокировкой
		booking, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: status is %s", ErrCannotReschedule, booking.Status)
		}

		settings, err := uc.salonRepo.GetSettings(txCtx, booking.SalonID)
		if err != nil {
			if !errors.Is(err, salonRepo.ErrSettingsNotFound) {
				uc.logger.Error("RescheduleBooking: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
			}
			settings = domain.DefaultSettings(booking.SalonID)
		}
		loc := settings.Location()

		// 4.2. Валидация даты
		if scheduling.IsPastDate(req.Date, now, loc) {
			return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
		}
		if !scheduling.WithinHorizon(req.Date, now, settings.BookingHorizonMonths, loc) {
			return fmt.Errorf("%w: can only book %d months in advance", ErrDateTooFarInFuture, settings.BookingHorizonMonths)
		}

		overrides, err := uc.salonRepo.GetOverrides(txCtx, booking.SalonID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get overrides: %v", err)
			return fmt.Errorf("%w: failed to get overrides: %w", ErrInternal, err)
		}

		dayBookings, err := uc.bookingRepo.GetBySalonWithFilter(txCtx, domain.SalonBookingsFilter{
			SalonID:   booking.SalonID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.3. Новый слот проверяется без учета самого переносимого бронирования
		state := scheduling.NewSchedulingState(settings, overrides, withoutBooking(dayBookings, booking.ID), masters)
		switch state.SlotOutcome(scheduling.SlotQuery{
			Date:            req.Date,
			ServiceDuration: booking.TotalDuration,
			MasterID:        targetMaster,
			Now:             now,
		}, req.StartTime) {
		case scheduling.OutcomeClosedDay:
			return ErrSalonClosed
		case scheduling.OutcomeFullyBooked:
			return fmt.Errorf("%w: %s at %s", ErrSlotNotAvailable, req.Date.Format(domain.DateFormat), req.StartTime)
		}

		moved := *booking
		moved.BookingDate = req.Date
		moved.StartTime = req.StartTime
		moved.MasterID = targetMaster

		if err := state.Validate(&moved); err != nil {
			return fmt.Errorf("%w: %w", ErrSlotTaken, err)
		}

		// 4.4. Сохраняем
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.Date, req.StartTime, targetMaster); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
		}

		result = &moved
		return nil
	})

	if txmanager.IsSerializationFailure(err) {
		err = fmt.Errorf("%w: concurrent change of the same day, please choose the slot again: %w", ErrSlotTaken, err)
	}
	if err != nil {
		uc.logger.Warn("RescheduleBooking: booking=%d not moved: %v", req.BookingID, err)
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved from %s %s to %s %s",
		result.ID, current.BookingDate.Format(domain.DateFormat), current.StartTime,
		result.BookingDate.Format(domain.DateFormat), result.StartTime)

	return &Response{
		Booking:       result,
		PreviousDate:  current.BookingDate,
		PreviousStart: current.StartTime,
		MasterChanged: masterChanged,
	}, nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}
