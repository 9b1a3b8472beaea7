package salon

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден в каталоге
	ErrSalonNotFound = errors.New("salon: salon not found")

	// ErrOverrideNotFound возвращается, когда исключение расписания на дату не найдено
	ErrOverrideNotFound = errors.New("salon: schedule override not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер салона
	ErrAccessDenied = errors.New("salon: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("salon: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("salon: internal error")
)
