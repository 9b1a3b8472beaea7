package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("bookings: salon not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrSlotTaken возвращается, когда подтверждение невозможно из-за пересечения с другим бронированием
	ErrSlotTaken = errors.New("bookings: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
