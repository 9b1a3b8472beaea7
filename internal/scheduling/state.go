package scheduling

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// SlotQuery параметры запроса доступных слотов
type SlotQuery struct {
	Date            time.Time
	ServiceDuration int
	MasterID        *int64 // nil = любой мастер
	Now             time.Time
}

// SlotResult доступные слоты на дату
type SlotResult struct {
	Window  domain.WorkWindow
	Slots   []types.TimeOfDay
	Outcome Outcome
}

// SchedulingState снимок данных салона, над которым работает движок
// Курсор ротации и список бронирований защищены мьютексом
type SchedulingState struct {
	mu        sync.Mutex
	settings  domain.SalonSettings
	overrides domain.ScheduleOverrides
	bookings  []*domain.Booking
	masters   []domain.Master
	loc       *time.Location
}

// NewSchedulingState создает состояние; уволенные мастера исключаются из пула
func NewSchedulingState(
	settings *domain.SalonSettings,
	overrides domain.ScheduleOverrides,
	bookings []*domain.Booking,
	masters []domain.Master,
) *SchedulingState {
	if overrides == nil {
		overrides = domain.ScheduleOverrides{}
	}
	return &SchedulingState{
		settings:  *settings,
		overrides: overrides,
		bookings:  bookings,
		masters:   ActiveMasters(masters),
		loc:       settings.Location(),
	}
}

// Location часовой пояс салона
func (s *SchedulingState) Location() *time.Location {
	return s.loc
}

// Masters активные мастера в порядке ротации
func (s *SchedulingState) Masters() []domain.Master {
	return s.masters
}

// Cursor текущее значение курсора ротации
func (s *SchedulingState) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.LastAssignedMasterIndex
}

// WorkWindow рабочее окно салона на дату
func (s *SchedulingState) WorkWindow(date time.Time) domain.WorkWindow {
	return ResolveWorkWindow(date, s.settings.ScheduleMode, s.settings.WeeklySchedule, s.overrides, s.settings.ShiftDefaults)
}

// AvailableSlots вычисляет доступные слоты на дату
func (s *SchedulingState) AvailableSlots(q SlotQuery) SlotResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := s.WorkWindow(q.Date)
	candidates := GenerateSlots(window, s.settings.SlotIntervalMinutes)
	if len(candidates) == 0 {
		return SlotResult{Window: window, Slots: []types.TimeOfDay{}, Outcome: OutcomeClosedDay}
	}

	slots := FilterSlots(candidates, s.filterParams(q, window))
	outcome := OutcomeAvailable
	if len(slots) == 0 {
		outcome = OutcomeFullyBooked
	}
	return SlotResult{Window: window, Slots: slots, Outcome: outcome}
}

// SlotOutcome проверяет один слот: он должен лежать на сетке и пройти фильтр
func (s *SchedulingState) SlotOutcome(q SlotQuery, at types.TimeOfDay) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := s.WorkWindow(q.Date)
	candidates := GenerateSlots(window, s.settings.SlotIntervalMinutes)
	if len(candidates) == 0 {
		return OutcomeClosedDay
	}

	onGrid := false
	for _, c := range candidates {
		if c == at {
			onGrid = true
			break
		}
	}
	if !onGrid {
		return OutcomeFullyBooked
	}

	if len(FilterSlots([]types.TimeOfDay{at}, s.filterParams(q, window))) == 0 {
		return OutcomeFullyBooked
	}
	return OutcomeAvailable
}

// AssignMaster выбирает мастера по кругу и продвигает курсор
// Курсор сохраняется вызывающим только после успешной фиксации бронирования
func (s *SchedulingState) AssignMaster(date time.Time, at types.TimeOfDay) (Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignment, ok := SelectNext(s.masters, date, at, s.settings.LastAssignedMasterIndex, s.bookings)
	if !ok {
		return Assignment{}, ErrNoMasterAvailable
	}
	s.settings.LastAssignedMasterIndex = assignment.Index
	return assignment, nil
}

// Validate авторитетная проверка пересечений для бронирования
func (s *SchedulingState) Validate(proposed *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ValidateBooking(proposed, s.bookings, s.settings.BufferMinutes, s.loc)
}

// AddBooking добавляет зафиксированное бронирование в снимок
func (s *SchedulingState) AddBooking(b *domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, b)
}

func (s *SchedulingState) filterParams(q SlotQuery, window domain.WorkWindow) FilterParams {
	return FilterParams{
		Date:            q.Date,
		Window:          window,
		ServiceDuration: q.ServiceDuration,
		BufferMinutes:   s.settings.BufferMinutes,
		Bookings:        s.bookings,
		Now:             q.Now,
		MasterID:        q.MasterID,
		MasterPool:      MasterIDs(s.masters),
		Location:        s.loc,
	}
}
