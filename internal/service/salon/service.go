package salon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	catalogClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/scheduling"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/salon/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Service сервис для работы с настройками и расписанием салона
type Service struct {
	salonRepo     SalonRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса салона
func NewService(salonRepo SalonRepository, catalogClient CatalogClient, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		salonRepo:     salonRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetSettings получает настройки салона
// Если салон еще не сохранял настройки, возвращаются значения по умолчанию
func (s *Service) GetSettings(ctx context.Context, salonID int64) (*models.SettingsResponse, error) {
	settings, err := s.salonRepo.GetSettings(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSettingsNotFound) {
			return models.FromDomainSettings(domain.DefaultSettings(salonID), true), nil
		}
		s.logger.Error("GetSettings: failed to get settings for salon_id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSettings(settings, false), nil
}

// UpdateSettings частично обновляет настройки салона
// Доступно только менеджерам салона
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: salon_id=%d, user_id=%d", req.SalonID, req.UserID)

	if err := s.checkManager(ctx, "UpdateSettings", req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	var saved *domain.SalonSettings
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Читаем текущие настройки под блокировкой (курсор ротации не трогаем)
		current, err := s.salonRepo.GetSettings(ctx, req.SalonID)
		if err != nil {
			if !errors.Is(err, salonRepo.ErrSettingsNotFound) {
				return fmt.Errorf("%w: UpdateSettings - get settings: %w", ErrInternal, err)
			}
			current = domain.DefaultSettings(req.SalonID)
		}

		// 2. Применяем изменения и проверяем результат целиком
		req.ApplyToSettings(current)
		if err := validateSettings(current); err != nil {
			return err
		}

		// 3. Сохраняем
		saved, err = s.salonRepo.UpsertSettings(ctx, current)
		if err != nil {
			return fmt.Errorf("%w: UpdateSettings - upsert settings: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("UpdateSettings: invalid settings for salon_id=%d: %v", req.SalonID, err)
		} else {
			s.logger.Error("UpdateSettings: failed for salon_id=%d: %v", req.SalonID, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateSettings: settings updated for salon_id=%d", req.SalonID)
	return models.FromDomainSettings(saved, false), nil
}

// ListOverrides получает исключения расписания за период [from, to]
func (s *Service) ListOverrides(ctx context.Context, salonID int64, from, to string) (*models.OverrideListResponse, error) {
	fromDate, err := time.Parse(domain.DateFormat, from)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from date %q, expected YYYY-MM-DD", ErrInvalidInput, from)
	}
	toDate, err := time.Parse(domain.DateFormat, to)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to date %q, expected YYYY-MM-DD", ErrInvalidInput, to)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: to date must not be before from date", ErrInvalidInput)
	}
	if toDate.Sub(fromDate) > time.Duration(domain.MaxShiftPatternDays)*24*time.Hour {
		return nil, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, domain.MaxShiftPatternDays)
	}

	overrides, err := s.salonRepo.GetOverrides(ctx, salonID, fromDate, toDate)
	if err != nil {
		s.logger.Error("ListOverrides: failed to get overrides for salon_id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListOverrides - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainOverrides(overrides), nil
}

// SetOverrides сохраняет исключения расписания на конкретные даты
// Существующие исключения на те же даты заменяются
func (s *Service) SetOverrides(ctx context.Context, req *models.SetOverridesRequest) (*models.OverrideListResponse, error) {
	s.logger.Info("SetOverrides: salon_id=%d, user_id=%d, count=%d", req.SalonID, req.UserID, len(req.Overrides))

	if len(req.Overrides) == 0 {
		return nil, fmt.Errorf("%w: at least one override is required", ErrInvalidInput)
	}
	if len(req.Overrides) > domain.MaxShiftPatternDays {
		return nil, fmt.Errorf("%w: too many overrides (max %d)", ErrInvalidInput, domain.MaxShiftPatternDays)
	}

	byDate := make(domain.ScheduleOverrides, len(req.Overrides))
	for i, ov := range req.Overrides {
		normalized, err := normalizeOverride(ov)
		if err != nil {
			return nil, fmt.Errorf("%w: overrides[%d]: %w", ErrInvalidInput, i, err)
		}
		if _, dup := byDate[normalized.Date]; dup {
			return nil, fmt.Errorf("%w: duplicate date %s", ErrInvalidInput, normalized.Date)
		}
		byDate[normalized.Date] = normalized
	}

	if err := s.checkManager(ctx, "SetOverrides", req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	sorted := models.SortedOverrides(byDate)
	if err := s.salonRepo.UpsertOverrides(ctx, req.SalonID, sorted); err != nil {
		s.logger.Error("SetOverrides: failed to save overrides for salon_id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: SetOverrides - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("SetOverrides: saved %d overrides for salon_id=%d", len(sorted), req.SalonID)
	return &models.OverrideListResponse{Overrides: sorted}, nil
}

// DeleteOverride удаляет исключение расписания на дату
// После удаления день снова определяется недельным расписанием
func (s *Service) DeleteOverride(ctx context.Context, salonID int64, userID int64, date string) error {
	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, date)
	}

	if err := s.checkManager(ctx, "DeleteOverride", salonID, userID); err != nil {
		return err
	}

	if err := s.salonRepo.DeleteOverride(ctx, salonID, day); err != nil {
		if errors.Is(err, salonRepo.ErrOverrideNotFound) {
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: failed for salon_id=%d, date=%s: %v", salonID, date, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: override removed for salon_id=%d, date=%s", salonID, date)
	return nil
}

// ApplyShiftPattern генерирует исключения по графику "N через M" и сохраняет их одной операцией
func (s *Service) ApplyShiftPattern(ctx context.Context, req *models.ShiftPatternRequest) (*models.OverrideListResponse, error) {
	s.logger.Info("ApplyShiftPattern: salon_id=%d, user_id=%d, %d/%d for %d days",
		req.SalonID, req.UserID, req.WorkDays, req.OffDays, req.Days)

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate %q, expected YYYY-MM-DD", ErrInvalidInput, req.StartDate)
	}
	breaks, err := validateBreaks(req.Breaks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	overrides, err := scheduling.GenerateShiftPattern(domain.ShiftPattern{
		StartDate: startDate,
		Days:      req.Days,
		WorkDays:  req.WorkDays,
		OffDays:   req.OffDays,
		Hours:     req.Hours,
		Breaks:    breaks,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.checkManager(ctx, "ApplyShiftPattern", req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	sorted := models.SortedOverrides(overrides)
	if err := s.salonRepo.UpsertOverrides(ctx, req.SalonID, sorted); err != nil {
		s.logger.Error("ApplyShiftPattern: failed to save overrides for salon_id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: ApplyShiftPattern - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ApplyShiftPattern: saved %d overrides for salon_id=%d", len(sorted), req.SalonID)
	return &models.OverrideListResponse{Overrides: sorted}, nil
}

// checkManager проверяет, что пользователь является менеджером салона
func (s *Service) checkManager(ctx context.Context, op string, salonID, userID int64) error {
	salon, err := s.catalogClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			return ErrSalonNotFound
		}
		s.logger.Error("%s: failed to get salon_id=%d from catalog: %v", op, salonID, err)
		return fmt.Errorf("%w: %s - catalog error: %w", ErrInternal, op, err)
	}

	if !salon.IsManager(userID) {
		s.logger.Warn("%s: user=%d is not a manager of salon_id=%d", op, userID, salonID)
		return ErrAccessDenied
	}
	return nil
}

// validateSettings проверяет настройки после применения изменений
func validateSettings(s *domain.SalonSettings) error {
	if !s.ScheduleMode.IsValid() {
		return fmt.Errorf("%w: scheduleMode must be %q or %q", ErrInvalidInput, domain.ScheduleModeWeekly, domain.ScheduleModeShift)
	}
	if s.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || s.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}
	if s.BufferMinutes < domain.MinBufferMinutes || s.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	if s.BookingHorizonMonths < domain.MinBookingHorizonMonths || s.BookingHorizonMonths > domain.MaxBookingHorizonMonths {
		return fmt.Errorf("%w: bookingHorizonMonths must be between %d and %d",
			ErrInvalidInput, domain.MinBookingHorizonMonths, domain.MaxBookingHorizonMonths)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil || s.Timezone == "" {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, s.Timezone)
	}

	known := make(map[domain.Weekday]bool, 7)
	for _, day := range domain.AllWeekdays() {
		known[day] = true
	}
	for day, hours := range s.WeeklySchedule {
		if !known[day] {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, day)
		}
		// пустые часы означают выходной
		if hours.Start == "" && hours.End == "" {
			continue
		}
		if err := validateHours(hours.Start, hours.End); err != nil {
			return fmt.Errorf("%w: weeklySchedule.%s: %w", ErrInvalidInput, day, err)
		}
	}

	if err := validateHours(s.ShiftDefaults.WorkHours.Start, s.ShiftDefaults.WorkHours.End); err != nil {
		return fmt.Errorf("%w: shiftDefaults.workHours: %w", ErrInvalidInput, err)
	}

	return nil
}

// normalizeOverride проверяет исключение и приводит время к формату HH:MM
func normalizeOverride(ov domain.ScheduleOverride) (domain.ScheduleOverride, error) {
	day, err := time.Parse(domain.DateFormat, ov.Date)
	if err != nil {
		return ov, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", ov.Date)
	}
	ov.Date = day.Format(domain.DateFormat)

	if !ov.IsWorking {
		return domain.ScheduleOverride{Date: ov.Date, IsWorking: false}, nil
	}

	// в сменном режиме рабочий день может не указывать часы: берутся часы смены по умолчанию
	if ov.Start != "" || ov.End != "" {
		if err := validateHours(ov.Start, ov.End); err != nil {
			return ov, err
		}
		start, _ := types.ParseTimeOfDay(ov.Start)
		end, _ := types.ParseTimeOfDay(ov.End)
		ov.Start, ov.End = start.String(), end.String()
	}

	breaks, err := validateBreaks(ov.Breaks)
	if err != nil {
		return ov, err
	}
	ov.Breaks = breaks
	return ov, nil
}

// validateBreaks проверяет перерывы и приводит время к формату HH:MM
func validateBreaks(raw []domain.BreakHours) ([]domain.BreakHours, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	result := make([]domain.BreakHours, 0, len(raw))
	for i, br := range raw {
		if err := validateHours(br.Start, br.End); err != nil {
			return nil, fmt.Errorf("breaks[%d]: %v", i, err)
		}
		start, _ := types.ParseTimeOfDay(br.Start)
		end, _ := types.ParseTimeOfDay(br.End)
		result = append(result, domain.BreakHours{Start: start.String(), End: end.String()})
	}
	return result, nil
}

// validateHours проверяет пару "HH:MM" с условием start < end
func validateHours(startRaw, endRaw string) error {
	start, err := types.ParseTimeOfDay(startRaw)
	if err != nil {
		return fmt.Errorf("start: %v", err)
	}
	end, err := types.ParseTimeOfDay(endRaw)
	if err != nil {
		return fmt.Errorf("end: %v", err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("start %s must be before end %s", start, end)
	}
	return nil
}
