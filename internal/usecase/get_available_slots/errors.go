package get_available_slots

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден в каталоге
	ErrSalonNotFound = errors.New("get_available_slots: salon not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrMasterNotFound возвращается, когда запрошенный мастер не работает в салоне
	ErrMasterNotFound = errors.New("get_available_slots: master not found")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта бронирования салона
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
