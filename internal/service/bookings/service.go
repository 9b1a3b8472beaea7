package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	catalogClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/scheduling"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// staffRole роль пользователя в салоне
type staffRole int

const (
	roleNone staffRole = iota
	roleMaster
	roleManager
)

// staffAccess роль пользователя и, для мастера, его ID в ротации
type staffAccess struct {
	role     staffRole
	masterID int64
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	salonRepo     SalonRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	now           func() time.Time
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		salonRepo:     salonRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		now:           time.Now,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу, менеджеру салона и назначенному мастеру
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		access, err := s.staffAccess(ctx, booking.SalonID, userID)
		if err != nil {
			return nil, err
		}
		if !access.canSee(booking) {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, ErrAccessDenied
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Пользователь видит только свои записи
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSalonBookings получает бронирования салона с фильтрацией
// Менеджер видит все записи, мастер только свои
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetSalonBookings: fetching bookings for salon=%d, user=%d", req.SalonID, req.UserID)
	if req.MasterID != nil {
		logMsg += fmt.Sprintf(", master=%d", *req.MasterID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	access, err := s.staffAccess(ctx, req.SalonID, req.UserID)
	if err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	switch access.role {
	case roleManager:
	case roleMaster:
		if filter.MasterID != nil && *filter.MasterID != access.masterID {
			s.logger.Warn("GetSalonBookings: master user=%d requested bookings of master=%d", req.UserID, *filter.MasterID)
			return nil, ErrAccessDenied
		}
		filter.MasterID = &access.masterID
	default:
		s.logger.Warn("GetSalonBookings: user=%d is not staff of salon=%d", req.UserID, req.SalonID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить свою запись, персонал салона любую запись салона
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	reason := strings.TrimSpace(req.CancellationReason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if booking.UserID != req.UserID {
		access, err := s.staffAccess(ctx, booking.SalonID, req.UserID)
		if err != nil {
			return err
		}
		if !access.canSee(booking) {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus меняет статус бронирования (подтверждение, начало, завершение)
// Доступно менеджеру салона и назначенному мастеру.
// Подтверждение повторно проверяет пересечения, завершение фиксирует фактическое время окончания.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if newStatus == domain.StatusCancelled {
		return fmt.Errorf("%w: use cancel to cancel a booking", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	access, err := s.staffAccess(ctx, booking.SalonID, req.UserID)
	if err != nil {
		return err
	}
	if !access.canSee(booking) {
		s.logger.Warn("UpdateStatus: user=%d cannot manage booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем с блокировкой, статус мог измениться
		current, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}
		if !current.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
		}

		if newStatus == domain.StatusConfirmed {
			if err := s.guard(txCtx, current); err != nil {
				return err
			}
		}

		var completedAt *time.Time
		if newStatus == domain.StatusCompleted {
			now := s.now()
			completedAt = &now
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus, completedAt); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if txmanager.IsSerializationFailure(err) {
		if newStatus == domain.StatusConfirmed {
			err = fmt.Errorf("%w: concurrent booking on the same day: %w", ErrSlotTaken, err)
		} else {
			err = fmt.Errorf("%w: booking was changed concurrently: %w", ErrInvalidTransition, err)
		}
	}
	if err != nil {
		s.logger.Warn("UpdateStatus: booking id=%d not updated: %v", bookingID, err)
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// guard повторно проверяет, что бронирование не пересекается с другими на свою дату
func (s *Service) guard(ctx context.Context, booking *domain.Booking) error {
	settings, err := s.salonRepo.GetSettings(ctx, booking.SalonID)
	if err != nil {
		if !errors.Is(err, salonRepo.ErrSettingsNotFound) {
			s.logger.Error("guard: failed to get settings for salon=%d: %v", booking.SalonID, err)
			return fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
		}
		settings = domain.DefaultSettings(booking.SalonID)
	}

	day, err := s.bookingRepo.GetBySalonWithFilter(ctx, domain.SalonBookingsFilter{
		SalonID:   booking.SalonID,
		StartDate: &booking.BookingDate,
		EndDate:   &booking.BookingDate,
	})
	if err != nil {
		s.logger.Error("guard: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	if err := scheduling.ValidateBooking(booking, day, settings.BufferMinutes, settings.Location()); err != nil {
		return fmt.Errorf("%w: %w", ErrSlotTaken, err)
	}
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

// staffAccess определяет роль пользователя в салоне по данным каталога
func (s *Service) staffAccess(ctx context.Context, salonID, userID int64) (staffAccess, error) {
	salon, err := s.catalogClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			s.logger.Warn("staffAccess: salon id=%d not found", salonID)
			return staffAccess{}, ErrSalonNotFound
		}
		s.logger.Error("staffAccess: failed to get salon id=%d: %v", salonID, err)
		return staffAccess{}, fmt.Errorf("%w: staffAccess - failed to get salon: %w", ErrInternal, err)
	}
	if salon.IsManager(userID) {
		return staffAccess{role: roleManager}, nil
	}

	masters, err := s.catalogClient.GetMasters(ctx, salonID)
	if err != nil {
		s.logger.Error("staffAccess: failed to get masters of salon id=%d: %v", salonID, err)
		return staffAccess{}, fmt.Errorf("%w: staffAccess - failed to get masters: %w", ErrInternal, err)
	}
	for _, m := range masters {
		if m.UserID == userID && m.IsActive() {
			return staffAccess{role: roleMaster, masterID: m.ID}, nil
		}
	}

	return staffAccess{role: roleNone}, nil
}

// canSee менеджер видит все записи салона, мастер свои и неназначенные
func (a staffAccess) canSee(b *domain.Booking) bool {
	switch a.role {
	case roleManager:
		return true
	case roleMaster:
		return b.MasterID == nil || *b.MasterID == a.masterID
	}
	return false
}
