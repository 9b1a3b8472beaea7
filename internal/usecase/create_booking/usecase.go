package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	catalogClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/scheduling"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// Способ назначения мастера
const (
	AssignmentRequested  = "requested"
	AssignmentRoundRobin = "round_robin"
	AssignmentFallback   = "fallback"
	AssignmentUnassigned = "unassigned"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	salonRepo     SalonRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	metrics       MetricsRecorder
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		salonRepo:     salonRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка слота, назначение мастера и сохранение курсора выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, salon=%d, services=%v, date=%s, time=%s",
		req.UserID, req.SalonID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон, услуги и мастеров из каталога
	salon, err := uc.catalogClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		return nil, uc.mapCatalogError("get salon", err)
	}

	services, err := uc.catalogClient.GetServices(ctx, req.SalonID, req.ServiceIDs, req.Lang)
	if err != nil {
		return nil, uc.mapCatalogError("get services", err)
	}
	items, duration, totalPrice := summarizeServices(services)

	masters, err := uc.catalogClient.GetMasters(ctx, req.SalonID)
	if err != nil {
		return nil, uc.mapCatalogError("get masters", err)
	}

	var requested *domain.Master
	if req.MasterID != nil {
		m, ok := findMaster(*req.MasterID, masters)
		if !ok {
			uc.logger.Warn("CreateBooking: master id=%d not found in salon=%d", *req.MasterID, req.SalonID)
			return nil, fmt.Errorf("%w: id=%d", ErrMasterNotFound, *req.MasterID)
		}
		requested = &m
	}

	status := domain.StatusPending
	if isStaff(req.UserID, salon, masters) {
		status = domain.StatusConfirmed
	}

	var (
		result     *domain.Booking
		assignment string
		masterName *string
		check      scheduling.ClientCheck
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторная попытка начинается с чистого состояния
		assignment, masterName = "", nil

		// 4.1. Антифрод: лимит открытых записей клиента, до проверки слота
		openBookings, err := uc.bookingRepo.GetOpenByClientPhone(txCtx, req.SalonID, scheduling.NormalizePhone(req.ClientPhone))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get client bookings: %v", err)
			return fmt.Errorf("%w: failed to get client bookings: %w", ErrInternal, err)
		}
		check, err = scheduling.CheckClientLimit(req.ClientPhone, openBookings)
		if err != nil {
			return fmt.Errorf("%w: you already have %d upcoming bookings in this salon", ErrClientBookingLimitExceeded, check.OpenBookings)
		}

		// 4.2. Получаем настройки салона с блокировкой (курсор ротации)
		settings, err := uc.salonRepo.GetSettings(txCtx, req.SalonID)
		if err != nil {
			if !errors.Is(err, salonRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateBooking: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
			}
			settings = domain.DefaultSettings(req.SalonID)
		}
		loc := settings.Location()

		// 4.3. Валидация даты
		if scheduling.IsPastDate(req.Date, now, loc) {
			return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
		}
		if !scheduling.WithinHorizon(req.Date, now, settings.BookingHorizonMonths, loc) {
			return fmt.Errorf("%w: can only book %d months in advance", ErrDateTooFarInFuture, settings.BookingHorizonMonths)
		}

		// 4.4. Исключения из расписания и бронирования дня (FOR UPDATE)
		overrides, err := uc.salonRepo.GetOverrides(txCtx, req.SalonID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overrides: %v", err)
			return fmt.Errorf("%w: failed to get overrides: %w", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.GetBySalonWithFilter(txCtx, domain.SalonBookingsFilter{
			SalonID:   req.SalonID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		state := scheduling.NewSchedulingState(settings, overrides, bookings, masters)

		// 4.5. Слот должен быть доступен по тем же правилам, что и в списке слотов
		switch state.SlotOutcome(scheduling.SlotQuery{
			Date:            req.Date,
			ServiceDuration: duration,
			MasterID:        req.MasterID,
			Now:             now,
		}, req.StartTime) {
		case scheduling.OutcomeClosedDay:
			return ErrSalonClosed
		case scheduling.OutcomeFullyBooked:
			return fmt.Errorf("%w: %s at %s", ErrSlotNotAvailable, req.Date.Format(domain.DateFormat), req.StartTime)
		}

		// 4.6. Назначаем мастера
		var masterID *int64
		rotated := false
		switch {
		case requested != nil:
			masterID = ptr.Ptr(requested.ID)
			masterName = ptr.Ptr(requested.Name)
			assignment = AssignmentRequested
		default:
			picked, err := state.AssignMaster(req.Date, req.StartTime)
			if err != nil {
				if !settings.AllowUnassigned {
					return ErrNoMasterAvailable
				}
				assignment = AssignmentUnassigned
				break
			}
			masterID = ptr.Ptr(picked.Master.ID)
			masterName = ptr.Ptr(picked.Master.Name)
			assignment = AssignmentRoundRobin
			if picked.Fallback {
				assignment = AssignmentFallback
			}
			rotated = true
		}

		booking := &domain.Booking{
			SalonID:       req.SalonID,
			UserID:        req.UserID,
			ClientPhone:   scheduling.NormalizePhone(req.ClientPhone),
			ClientName:    req.ClientName,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			ServiceIDs:    req.ServiceIDs,
			TotalDuration: duration,
			MasterID:      masterID,
			Status:        status,
			Suspicious:    check.Suspicious,
			Notes:         req.Notes,
		}

		// 4.7. Авторитетная проверка пересечений по заблокированному снимку
		if err := state.Validate(booking); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return fmt.Errorf("%w: %w", ErrSlotTaken, err)
		}

		// 4.8. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 4.9. Курсор ротации сохраняется только вместе с бронированием
		if rotated {
			settings.LastAssignedMasterIndex = state.Cursor()
			if err := uc.salonRepo.SaveCursor(txCtx, settings); err != nil {
				uc.logger.Error("CreateBooking: failed to save rotation cursor: %v", err)
				return fmt.Errorf("%w: failed to save rotation cursor: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if txmanager.IsSerializationFailure(err) {
		// Повторы исчерпаны: слот оспаривается параллельной записью
		err = fmt.Errorf("%w: concurrent booking in progress, please choose the slot again: %w", ErrSlotTaken, err)
	}
	if err != nil {
		uc.reject(rejectReason(err))
		if !errors.Is(err, ErrInternal) {
			uc.logger.Warn("CreateBooking: rejected: %v", err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(assignment, string(result.Status))
		if assignment != AssignmentRequested {
			uc.metrics.IncMasterAssignment(assignment)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, master=%v, assignment=%s, suspicious=%t",
		result.ID, ptr.Value(result.MasterID), assignment, result.Suspicious)

	// Конвертируем в response
	return &Response{
		ID:            result.ID,
		SalonID:       result.SalonID,
		UserID:        result.UserID,
		ClientPhone:   result.ClientPhone,
		ClientName:    result.ClientName,
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		ServiceIDs:    result.ServiceIDs,
		TotalDuration: result.TotalDuration,
		MasterID:      result.MasterID,
		MasterName:    masterName,
		Assignment:    assignment,
		Status:        string(result.Status),
		Suspicious:    result.Suspicious,
		Notes:         result.Notes,
		Services:      items,
		TotalPrice:    totalPrice,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

func (uc *UseCase) reject(reason string) {
	if uc.metrics != nil {
		uc.metrics.IncBookingRejected(reason)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrClientBookingLimitExceeded):
		return "client_limit"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, ErrSlotNotAvailable):
		return "slot_unavailable"
	case errors.Is(err, ErrSalonClosed):
		return "closed_day"
	case errors.Is(err, ErrNoMasterAvailable):
		return "no_master"
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrDateTooFarInFuture):
		return "invalid_date"
	default:
		return "internal"
	}
}

func (uc *UseCase) mapCatalogError(op string, err error) error {
	switch {
	case errors.Is(err, catalogClient.ErrSalonNotFound):
		uc.logger.Warn("CreateBooking: %s: salon not found", op)
		return ErrSalonNotFound
	case errors.Is(err, catalogClient.ErrServiceNotFound):
		uc.logger.Warn("CreateBooking: %s: %v", op, err)
		return fmt.Errorf("%w: %w", ErrServiceNotFound, err)
	default:
		uc.logger.Error("CreateBooking: failed to %s: %v", op, err)
		return fmt.Errorf("%w: failed to %s: %w", ErrInternal, op, err)
	}
}
