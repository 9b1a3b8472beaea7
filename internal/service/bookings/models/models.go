package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	RequesterID int64   `json:"requesterId"`
	UserID      int64   `json:"userId"`
	Status      *string `json:"status,omitempty"`
}

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	UserID          int64      `json:"userId"`
	SalonID         int64      `json:"salonId"`
	MasterID        *int64     `json:"masterId,omitempty"`        // Фильтр по мастеру (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:         r.SalonID,
		MasterID:        r.MasterID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	SalonID       int64   `json:"salonId"`
	UserID        int64   `json:"userId"`
	ClientPhone   string  `json:"clientPhone"`
	ClientName    string  `json:"clientName"`
	BookingDate   string  `json:"bookingDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`   // "10:00"
	EndTime       string  `json:"endTime"`     // "11:30"
	ServiceIDs    []int64 `json:"serviceIds"`
	TotalDuration int     `json:"totalDuration"`
	MasterID      *int64  `json:"masterId"`
	Status        string  `json:"status"`
	Suspicious    bool    `json:"suspicious"`
	Notes         *string `json:"notes,omitempty"`

	CompletedAt        *string `json:"completedAt,omitempty"` // ISO 8601
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	serviceIDs := b.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		SalonID:            b.SalonID,
		UserID:             b.UserID,
		ClientPhone:        b.ClientPhone,
		ClientName:         b.ClientName,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.StartTime.AddMinutes(b.TotalDuration).String(),
		ServiceIDs:         serviceIDs,
		TotalDuration:      b.TotalDuration,
		MasterID:           b.MasterID,
		Status:             string(b.Status),
		Suspicious:         b.Suspicious,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.CompletedAt = formatTime(b.CompletedAt)
	resp.CancelledAt = formatTime(b.CancelledAt)

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
