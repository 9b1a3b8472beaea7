package scheduling

import "errors"

var (
	// ErrSlotTaken возвращается, когда к моменту фиксации слот уже занят другим бронированием
	ErrSlotTaken = errors.New("scheduling: slot is already taken")

	// ErrNoMasterAvailable возвращается, когда в салоне нет активных мастеров для назначения
	ErrNoMasterAvailable = errors.New("scheduling: no master available")

	// ErrClientBookingLimitExceeded возвращается, когда у клиента слишком много открытых записей
	ErrClientBookingLimitExceeded = errors.New("scheduling: client booking limit exceeded")

	// ErrInvalidShiftPattern возвращается при некорректных параметрах графика смен
	ErrInvalidShiftPattern = errors.New("scheduling: invalid shift pattern")
)

// Outcome результат расчета доступности на дату
// Закрытый день и полностью занятый день не являются ошибками
type Outcome string

const (
	OutcomeAvailable   Outcome = "available"
	OutcomeClosedDay   Outcome = "closed_day"
	OutcomeFullyBooked Outcome = "no_slots_available"
)
