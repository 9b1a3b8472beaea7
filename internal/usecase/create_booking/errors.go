package create_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден в каталоге
	ErrSalonNotFound = errors.New("create_booking: salon not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrMasterNotFound возвращается, когда запрошенный мастер не работает в салоне
	ErrMasterNotFound = errors.New("create_booking: master not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта бронирования салона
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSalonClosed возвращается, когда салон не работает в указанную дату
	ErrSalonClosed = errors.New("create_booking: salon is closed on this date")

	// ErrSlotNotAvailable возвращается, когда слот не на сетке, в прошлом, в перерыве или занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotTaken возвращается, когда слот занят к моменту фиксации
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrNoMasterAvailable возвращается, когда в салоне нет мастеров, а запись без мастера запрещена
	ErrNoMasterAvailable = errors.New("create_booking: no master available")

	// ErrClientBookingLimitExceeded возвращается, когда у клиента слишком много открытых записей
	ErrClientBookingLimitExceeded = errors.New("create_booking: client booking limit exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
