package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64           // ID создателя (клиент или сотрудник салона)
	SalonID     int64           // ID салона
	ServiceIDs  []int64         // Выбранные услуги
	MasterID    *int64          // Конкретный мастер (nil = назначить по кругу)
	Date        time.Time       // Дата бронирования (без времени)
	StartTime   types.TimeOfDay // Время начала слота
	ClientPhone string          // Телефон клиента
	ClientName  string          // Имя клиента
	Notes       *string         // Дополнительные заметки (опционально)
	Lang        string          // Язык названий услуг
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	SalonID       int64
	UserID        int64
	ClientPhone   string
	ClientName    string
	BookingDate   time.Time
	StartTime     types.TimeOfDay
	ServiceIDs    []int64
	TotalDuration int
	MasterID      *int64
	MasterName    *string // Имя назначенного мастера
	Assignment    string  // requested | round_robin | fallback | unassigned
	Status        string
	Suspicious    bool
	Notes         *string

	// Денормализованные данные услуг на момент записи
	Services   []ServiceItem
	TotalPrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceItem услуга в составе бронирования
type ServiceItem struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
}
