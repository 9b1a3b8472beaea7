package reschedule_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	BookingDate string `json:"bookingDate"`        // "2025-10-15"
	StartTime   string `json:"startTime"`          // "10:00"
	MasterID    *int64 `json:"masterId,omitempty"` // смена мастера (только персонал салона)
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Booking           *models.BookingResponse `json:"booking"`
	PreviousDate      string                  `json:"previousDate"`
	PreviousStartTime string                  `json:"previousStartTime"`
	MasterChanged     bool                    `json:"masterChanged"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(userID, bookingID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}
	start, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &rescheduleBooking.Request{
		UserID:    userID,
		BookingID: bookingID,
		Date:      date,
		StartTime: start,
		MasterID:  r.MasterID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		Booking:           models.FromDomainBooking(resp.Booking),
		PreviousDate:      resp.PreviousDate.Format(domain.DateFormat),
		PreviousStartTime: resp.PreviousStart.String(),
		MasterChanged:     resp.MasterChanged,
	}
}
