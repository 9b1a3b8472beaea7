package catalog

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден в каталоге
	ErrSalonNotFound = errors.New("catalog client: salon not found")

	// ErrServiceNotFound возвращается, когда хотя бы одна из запрошенных услуг не найдена
	ErrServiceNotFound = errors.New("catalog client: service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalog client: invalid response")
)
