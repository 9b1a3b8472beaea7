package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

func TestValidateBooking(t *testing.T) {
	existing := []*domain.Booking{
		booking(1, master(1), "10:00", 60, domain.StatusConfirmed),
		booking(2, master(2), "12:00", 30, domain.StatusPending),
		booking(3, master(1), "15:00", 60, domain.StatusCancelled),
	}

	tests := []struct {
		name     string
		proposed *domain.Booking
		buffer   int
		wantErr  bool
	}{
		{name: "same master overlap", proposed: booking(0, master(1), "10:30", 30, domain.StatusPending), wantErr: true},
		{name: "other master free", proposed: booking(0, master(2), "10:30", 30, domain.StatusPending)},
		{name: "touching intervals", proposed: booking(0, master(1), "11:00", 30, domain.StatusPending)},
		{name: "buffer after existing booking", proposed: booking(0, master(1), "11:00", 30, domain.StatusPending), buffer: 10, wantErr: true},
		{name: "cancelled does not block", proposed: booking(0, master(1), "15:00", 60, domain.StatusPending)},
		{name: "unassigned checks every booking", proposed: booking(0, nil, "12:15", 30, domain.StatusPending), wantErr: true},
		{name: "own booking ignored on reschedule", proposed: booking(1, master(1), "10:30", 60, domain.StatusConfirmed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBooking(tt.proposed, existing, tt.buffer, time.UTC)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSlotTaken)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateBooking_LegacyAndEarlyCompletion(t *testing.T) {
	legacy := booking(1, nil, "10:00", 60, domain.StatusConfirmed)
	err := ValidateBooking(booking(0, master(5), "10:30", 30, domain.StatusPending), []*domain.Booking{legacy}, 0, time.UTC)
	assert.ErrorIs(t, err, ErrSlotTaken)

	done := booking(2, master(5), "10:00", 60, domain.StatusCompleted)
	done.CompletedAt = ptr.Ptr(time.Date(2025, 10, 13, 10, 20, 0, 0, time.UTC))
	err = ValidateBooking(booking(0, master(5), "10:20", 40, domain.StatusPending), []*domain.Booking{done}, 0, time.UTC)
	assert.NoError(t, err)
}

func TestCheckClientLimit(t *testing.T) {
	clientBooking := func(phone string, status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{ClientPhone: phone, Status: status}
	}

	t.Run("third open booking is rejected", func(t *testing.T) {
		bookings := []*domain.Booking{
			clientBooking("+7 (900) 123-45-67", domain.StatusPending),
			clientBooking("79001234567", domain.StatusConfirmed),
			clientBooking("7-900-123-45-67", domain.StatusPending),
		}
		check, err := CheckClientLimit("+79001234567", bookings)
		assert.ErrorIs(t, err, ErrClientBookingLimitExceeded)
		assert.Equal(t, 3, check.OpenBookings)
	})

	t.Run("two open bookings are suspicious", func(t *testing.T) {
		bookings := []*domain.Booking{
			clientBooking("79001234567", domain.StatusPending),
			clientBooking("79001234567", domain.StatusInProgress),
			clientBooking("79001234567", domain.StatusCompleted),
			clientBooking("79001234567", domain.StatusCancelled),
			clientBooking("79990000000", domain.StatusPending),
		}
		check, err := CheckClientLimit("79001234567", bookings)
		assert.NoError(t, err)
		assert.Equal(t, 2, check.OpenBookings)
		assert.True(t, check.Suspicious)
	})

	t.Run("single booking is fine", func(t *testing.T) {
		check, err := CheckClientLimit("79001234567", []*domain.Booking{clientBooking("79001234567", domain.StatusPending)})
		assert.NoError(t, err)
		assert.False(t, check.Suspicious)
	})

	t.Run("no phone", func(t *testing.T) {
		check, err := CheckClientLimit("", []*domain.Booking{clientBooking("", domain.StatusPending)})
		assert.NoError(t, err)
		assert.Zero(t, check.OpenBookings)
	})
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "79001234567", NormalizePhone("+7 (900) 123-45-67"))
	assert.Equal(t, "79001234567", NormalizePhone("79001234567"))
	assert.Equal(t, "", NormalizePhone("нет номера"))
}
