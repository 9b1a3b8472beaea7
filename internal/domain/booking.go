package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking represents a salon appointment
type Booking struct {
	ID            int64
	SalonID       int64
	UserID        int64 // ID создателя записи (клиент или сотрудник салона)
	ClientPhone   string
	ClientName    string
	BookingDate   time.Time
	StartTime     types.TimeOfDay
	ServiceIDs    []int64
	TotalDuration int    // сумма длительностей услуг в минутах
	MasterID      *int64 // nil = мастер не назначен (или запись из одномастерной эпохи)
	Status        BookingStatus
	Suspicious    bool
	Notes         *string

	CompletedAt        *time.Time // фактическое время завершения
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies time in the schedule
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsOpen returns true if the booking is not yet finished (counted by the client limit)
func (b *Booking) IsOpen() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking time or master may still change
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// HasMaster returns true if a concrete master is bound to the booking
func (b *Booking) HasMaster() bool {
	return b.MasterID != nil
}

// CanTransitionTo reports whether the status change is allowed
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusInProgress || next == StatusCompleted || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	MasterID        *int64         // Фильтр по мастеру (опционально)
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
