package salon

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда салон еще не сохранял настройки
	ErrSettingsNotFound = errors.New("salon.repository: settings not found")

	// ErrOverrideNotFound возвращается, когда исключение расписания на дату не найдено
	ErrOverrideNotFound = errors.New("salon.repository: schedule override not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("salon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("salon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("salon.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации JSONB полей
	ErrEncode = errors.New("salon.repository: failed to encode json")
)
