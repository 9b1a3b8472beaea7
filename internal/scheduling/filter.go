package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// FilterParams входные данные фильтра слотов
type FilterParams struct {
	Date            time.Time
	Window          domain.WorkWindow
	ServiceDuration int
	BufferMinutes   int
	Bookings        []*domain.Booking
	Now             time.Time // нулевое значение отключает проверку прошедшего времени
	MasterID        *int64    // nil = любой мастер из MasterPool
	MasterPool      []int64
	Location        *time.Location
}

// FilterSlots оставляет кандидатов, на которые можно записаться
//
// Правила: слот не в прошлом, услуга с буфером заканчивается до закрытия,
// не пересекает перерывы и не конфликтует с бронированиями.
// Порядок кандидатов сохраняется, новые слоты не появляются.
func FilterSlots(candidates []types.TimeOfDay, p FilterParams) []types.TimeOfDay {
	result := make([]types.TimeOfDay, 0, len(candidates))
	if p.Window.IsClosed() || len(candidates) == 0 {
		return result
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	// 1. Прошедшие даты целиком недоступны, сегодня отсекаем слоты до текущей минуты включительно
	checkNow := false
	var nowTime types.TimeOfDay
	if !p.Now.IsZero() {
		now := p.Now.In(loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		day := time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(today) {
			return result
		}
		if day.Equal(today) {
			checkNow = true
			nowTime = types.FromTime(now)
		}
	}

	span := p.ServiceDuration + p.BufferMinutes
	if span < 0 {
		span = 0
	}
	busy := occupiedOn(p.Date, p.Bookings, p.BufferMinutes, loc)

	for _, s := range candidates {
		if checkNow && !nowTime.IsBefore(s) {
			continue
		}

		// 2. Помещается до закрытия
		candidate := interval{start: s, end: s.AddMinutes(span)}
		if s.IsBefore(p.Window.Start) || candidate.end.IsAfter(p.Window.End) {
			continue
		}

		// 3. Не пересекает перерывы
		if hitsBreak(candidate, p.Window.Breaks) {
			continue
		}

		// 4. Конфликты с бронированиями
		if isBlocked(candidate, busy, p.MasterID, p.MasterPool) {
			continue
		}

		result = append(result, s)
	}

	return result
}

func hitsBreak(candidate interval, breaks []domain.BreakInterval) bool {
	for _, b := range breaks {
		if candidate.overlaps(interval{start: b.Start, end: b.End}) {
			return true
		}
	}
	return false
}

// isBlocked проверяет конфликт кандидата с занятостью
// Конкретный мастер: блокируют его бронирования и бронирования без мастера.
// Любой мастер: слот занят, только если заняты все мастера пула.
// Пустой пул: одномастерный режим, блокирует любое пересечение.
func isBlocked(candidate interval, busy []occupied, masterID *int64, pool []int64) bool {
	if masterID != nil {
		return masterBusy(candidate, busy, *masterID)
	}

	if len(pool) == 0 {
		for _, o := range busy {
			if candidate.overlaps(o.span) {
				return true
			}
		}
		return false
	}

	for _, id := range pool {
		if !masterBusy(candidate, busy, id) {
			return false
		}
	}
	return true
}

func masterBusy(candidate interval, busy []occupied, masterID int64) bool {
	for _, o := range busy {
		if o.blocks(masterID) && candidate.overlaps(o.span) {
			return true
		}
	}
	return false
}
