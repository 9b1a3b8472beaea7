package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек салона
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID               int64                        `json:"-"`
	SalonID              int64                        `json:"-"`
	ScheduleMode         *string                      `json:"scheduleMode,omitempty"`
	WeeklySchedule       *domain.WeeklySchedule       `json:"weeklySchedule,omitempty"`
	ShiftDefaults        *domain.ShiftPatternDefaults `json:"shiftDefaults,omitempty"`
	SlotIntervalMinutes  *int                         `json:"slotIntervalMinutes,omitempty"`
	BufferMinutes        *int                         `json:"bufferMinutes,omitempty"`
	BookingHorizonMonths *int                         `json:"bookingHorizonMonths,omitempty"`
	AllowUnassigned      *bool                        `json:"allowUnassigned,omitempty"`
	Timezone             *string                      `json:"timezone,omitempty"`
}

// ApplyToSettings применяет переданные поля к настройкам
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.SalonSettings) {
	if r.ScheduleMode != nil {
		s.ScheduleMode = domain.ScheduleMode(*r.ScheduleMode)
	}
	if r.WeeklySchedule != nil {
		s.WeeklySchedule = *r.WeeklySchedule
	}
	if r.ShiftDefaults != nil {
		s.ShiftDefaults = *r.ShiftDefaults
	}
	if r.SlotIntervalMinutes != nil {
		s.SlotIntervalMinutes = *r.SlotIntervalMinutes
	}
	if r.BufferMinutes != nil {
		s.BufferMinutes = *r.BufferMinutes
	}
	if r.BookingHorizonMonths != nil {
		s.BookingHorizonMonths = *r.BookingHorizonMonths
	}
	if r.AllowUnassigned != nil {
		s.AllowUnassigned = *r.AllowUnassigned
	}
	if r.Timezone != nil {
		s.Timezone = *r.Timezone
	}
}

// SetOverridesRequest запрос на сохранение исключений расписания
type SetOverridesRequest struct {
	UserID    int64                     `json:"-"`
	SalonID   int64                     `json:"-"`
	Overrides []domain.ScheduleOverride `json:"overrides"`
}

// ShiftPatternRequest запрос на генерацию исключений по графику смен
type ShiftPatternRequest struct {
	UserID    int64               `json:"-"`
	SalonID   int64               `json:"-"`
	StartDate string              `json:"startDate"` // YYYY-MM-DD
	Days      int                 `json:"days"`
	WorkDays  int                 `json:"workDays"`
	OffDays   int                 `json:"offDays"`
	Hours     domain.DayHours     `json:"hours"`
	Breaks    []domain.BreakHours `json:"breaks,omitempty"`
}

// Response модели

// SettingsResponse ответ с настройками салона
type SettingsResponse struct {
	SalonID              int64                       `json:"salonId"`
	ScheduleMode         string                      `json:"scheduleMode"`
	WeeklySchedule       domain.WeeklySchedule       `json:"weeklySchedule"`
	ShiftDefaults        domain.ShiftPatternDefaults `json:"shiftDefaults"`
	SlotIntervalMinutes  int                         `json:"slotIntervalMinutes"`
	BufferMinutes        int                         `json:"bufferMinutes"`
	BookingHorizonMonths int                         `json:"bookingHorizonMonths"`
	AllowUnassigned      bool                        `json:"allowUnassigned"`
	Timezone             string                      `json:"timezone"`
	IsDefault            bool                        `json:"isDefault"` // настройки еще не сохранялись
	UpdatedAt            *time.Time                  `json:"updatedAt,omitempty"`
}

// OverrideListResponse ответ со списком исключений, отсортированных по дате
type OverrideListResponse struct {
	Overrides []domain.ScheduleOverride `json:"overrides"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.SalonSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	weekly := s.WeeklySchedule
	if weekly == nil {
		weekly = domain.WeeklySchedule{}
	}

	resp := &SettingsResponse{
		SalonID:              s.SalonID,
		ScheduleMode:         string(s.ScheduleMode),
		WeeklySchedule:       weekly,
		ShiftDefaults:        s.ShiftDefaults,
		SlotIntervalMinutes:  s.SlotIntervalMinutes,
		BufferMinutes:        s.BufferMinutes,
		BookingHorizonMonths: s.BookingHorizonMonths,
		AllowUnassigned:      s.AllowUnassigned,
		Timezone:             s.Timezone,
		IsDefault:            isDefault,
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}

	return resp
}

// FromDomainOverrides конвертирует исключения в список по возрастанию даты
func FromDomainOverrides(overrides domain.ScheduleOverrides) *OverrideListResponse {
	resp := &OverrideListResponse{
		Overrides: SortedOverrides(overrides),
	}
	return resp
}

// SortedOverrides возвращает исключения по возрастанию даты
func SortedOverrides(overrides domain.ScheduleOverrides) []domain.ScheduleOverride {
	result := make([]domain.ScheduleOverride, 0, len(overrides))
	for _, ov := range overrides {
		result = append(result, ov)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
