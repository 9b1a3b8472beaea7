package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	UserID    int64           // ID пользователя, выполняющего перенос
	BookingID int64           // ID бронирования
	Date      time.Time       // Новая дата
	StartTime types.TimeOfDay // Новое время начала
	MasterID  *int64          // Новый мастер (nil = оставить текущего), менять может только персонал
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	Booking       *domain.Booking
	PreviousDate  time.Time
	PreviousStart types.TimeOfDay
	MasterChanged bool
}
