package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не может менять бронирование
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается, когда бронирование уже начато, завершено или отменено
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrMasterNotFound возвращается, когда мастер не работает в салоне
	ErrMasterNotFound = errors.New("reschedule_booking: master not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта бронирования салона
	ErrDateTooFarInFuture = errors.New("reschedule_booking: date is too far in the future")

	// ErrSalonClosed возвращается, когда салон не работает в указанную дату
	ErrSalonClosed = errors.New("reschedule_booking: salon is closed on this date")

	// ErrSlotNotAvailable возвращается, когда новый слот недоступен
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrSlotTaken возвращается, когда слот занят к моменту фиксации
	ErrSlotTaken = errors.New("reschedule_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
