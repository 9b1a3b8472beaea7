package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID     int64     // ID пользователя (для логирования, может быть 0)
	SalonID    int64     // ID салона
	ServiceIDs []int64   // Выбранные услуги, длительности суммируются
	MasterID   *int64    // Конкретный мастер (nil = любой)
	Date       time.Time // Дата (без времени)
	Lang       string    // Язык названий услуг
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	SalonID         int64
	MasterID        *int64
	DurationMinutes int               // Суммарная длительность услуг
	Outcome         string            // available | closed_day | no_slots_available
	WorkStart       *types.TimeOfDay  // nil, если салон закрыт
	WorkEnd         *types.TimeOfDay  // nil, если салон закрыт
	Slots           []types.TimeOfDay // Время начала доступных слотов
}
