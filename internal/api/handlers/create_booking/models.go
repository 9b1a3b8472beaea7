package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID     int64   `json:"salonId"`
	ServiceIDs  []int64 `json:"serviceIds"`
	MasterID    *int64  `json:"masterId,omitempty"` // null = назначить мастера автоматически
	BookingDate string  `json:"bookingDate"`        // "2025-10-15"
	StartTime   string  `json:"startTime"`          // "10:00"
	ClientPhone string  `json:"clientPhone"`
	ClientName  string  `json:"clientName"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64           `json:"id"`
	SalonID       int64           `json:"salonId"`
	UserID        int64           `json:"userId"`
	ClientPhone   string          `json:"clientPhone"`
	ClientName    string          `json:"clientName"`
	BookingDate   string          `json:"bookingDate"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	TotalDuration int             `json:"totalDuration"`
	MasterID      *int64          `json:"masterId"`
	MasterName    *string         `json:"masterName,omitempty"`
	Assignment    string          `json:"assignment"`
	Status        string          `json:"status"`
	Suspicious    bool            `json:"suspicious"`
	Services      []BookedService `json:"services"`
	TotalPrice    float64         `json:"totalPrice"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// BookedService услуга в составе бронирования
type BookedService struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64, lang string) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		UserID:      userID,
		SalonID:     r.SalonID,
		ServiceIDs:  r.ServiceIDs,
		MasterID:    r.MasterID,
		Date:        bookingDate,
		StartTime:   startTime,
		ClientPhone: r.ClientPhone,
		ClientName:  r.ClientName,
		Notes:       r.Notes,
		Lang:        lang,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]BookedService, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = BookedService{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &BookingResponse{
		ID:            resp.ID,
		SalonID:       resp.SalonID,
		UserID:        resp.UserID,
		ClientPhone:   resp.ClientPhone,
		ClientName:    resp.ClientName,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.StartTime.AddMinutes(resp.TotalDuration).String(),
		TotalDuration: resp.TotalDuration,
		MasterID:      resp.MasterID,
		MasterName:    resp.MasterName,
		Assignment:    resp.Assignment,
		Status:        resp.Status,
		Suspicious:    resp.Suspicious,
		Services:      services,
		TotalPrice:    resp.TotalPrice,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
