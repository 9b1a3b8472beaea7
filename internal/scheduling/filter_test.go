package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

func TestFilterSlots_WeeklyNoBookings(t *testing.T) {
	window := ResolveWorkWindow(monday, domain.ScheduleModeWeekly,
		domain.WeeklySchedule{domain.Monday: {Start: "10:00", End: "20:00"}}, nil, domain.ShiftPatternDefaults{})

	got := FilterSlots(GenerateSlots(window, 30), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 60,
	})

	assert.Len(t, got, 19)
	assert.Equal(t, tod("10:00"), got[0])
	assert.Equal(t, tod("19:00"), got[len(got)-1])
	assert.False(t, contains(got, tod("19:30")))
}

func TestFilterSlots_Break(t *testing.T) {
	window := openWindow("10:00", "20:00", domain.BreakInterval{Start: tod("13:00"), End: tod("14:00")})

	got := FilterSlots(GenerateSlots(window, 30), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 60,
	})

	assert.False(t, contains(got, tod("13:00")))
	assert.False(t, contains(got, tod("13:30")))
	// 12:30 + 60 = 13:30 пересекает перерыв
	assert.False(t, contains(got, tod("12:30")))
	assert.True(t, contains(got, tod("12:00")))
	assert.True(t, contains(got, tod("14:00")))
}

func TestFilterSlots_AnyMasterNeedsOneFree(t *testing.T) {
	window := openWindow("10:00", "20:00")
	bookings := []*domain.Booking{booking(1, master(1), "10:00", 60, domain.StatusConfirmed)}

	got := FilterSlots(slots("10:00"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 60,
		Bookings:        bookings,
		MasterPool:      []int64{1, 2},
	})
	assert.Equal(t, slots("10:00"), got)

	// тот же слот для занятого мастера
	got = FilterSlots(slots("10:00"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 60,
		Bookings:        bookings,
		MasterID:        master(1),
		MasterPool:      []int64{1, 2},
	})
	assert.Empty(t, got)

	// оба мастера заняты
	bookings = append(bookings, booking(2, master(2), "09:30", 60, domain.StatusPending))
	window = openWindow("09:00", "20:00")
	got = FilterSlots(slots("10:00"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 60,
		Bookings:        bookings,
		MasterPool:      []int64{1, 2},
	})
	assert.Empty(t, got)
}

func TestFilterSlots_LegacyBookingWithoutMasterBlocksEveryone(t *testing.T) {
	window := openWindow("10:00", "20:00")
	bookings := []*domain.Booking{booking(1, nil, "11:00", 60, domain.StatusConfirmed)}

	params := FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 30,
		Bookings:        bookings,
		MasterPool:      []int64{1, 2, 3},
	}
	assert.Empty(t, FilterSlots(slots("11:00", "11:30"), params))

	params.MasterID = master(2)
	assert.Empty(t, FilterSlots(slots("11:00", "11:30"), params))
	assert.Equal(t, slots("12:00"), FilterSlots(slots("12:00"), params))
}

func TestFilterSlots_EmptyPoolSingleMasterMode(t *testing.T) {
	window := openWindow("10:00", "20:00")
	bookings := []*domain.Booking{booking(1, master(7), "10:00", 60, domain.StatusConfirmed)}

	got := FilterSlots(slots("10:00", "10:30", "11:00"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 30,
		Bookings:        bookings,
	})
	assert.Equal(t, slots("11:00"), got)
}

func TestFilterSlots_CancelledAndOtherDatesNeverBlock(t *testing.T) {
	window := openWindow("10:00", "20:00")
	otherDay := booking(2, master(1), "10:00", 60, domain.StatusConfirmed)
	otherDay.BookingDate = monday.AddDate(0, 0, 1)

	got := FilterSlots(slots("10:00"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 60,
		Bookings: []*domain.Booking{
			booking(1, master(1), "10:00", 60, domain.StatusCancelled),
			otherDay,
		},
		MasterID: master(1),
	})
	assert.Equal(t, slots("10:00"), got)
}

func TestFilterSlots_Buffer(t *testing.T) {
	window := openWindow("10:00", "12:00")
	bookings := []*domain.Booking{booking(1, master(1), "10:00", 60, domain.StatusConfirmed)}

	got := FilterSlots(slots("10:00", "10:30", "11:00", "11:30"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 30,
		BufferMinutes:   15,
		Bookings:        bookings,
		MasterID:        master(1),
	})
	// 11:00 попадает в буфер после записи (до 11:15), 11:30+30+15 > 12:00
	assert.Empty(t, got)

	got = FilterSlots(slots("11:15"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 30,
		BufferMinutes:   15,
		Bookings:        bookings,
		MasterID:        master(1),
	})
	assert.Equal(t, slots("11:15"), got)
}

func TestFilterSlots_EarlyCompletionReclaim(t *testing.T) {
	window := openWindow("10:00", "20:00")
	done := booking(1, master(1), "10:00", 60, domain.StatusCompleted)
	done.CompletedAt = ptr.Ptr(time.Date(2025, 10, 13, 10, 20, 0, 0, time.UTC))

	got := FilterSlots(slots("10:00", "10:20", "10:30", "10:40", "11:00"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 20,
		Bookings:        []*domain.Booking{done},
		MasterID:        master(1),
	})
	assert.Equal(t, slots("10:20", "10:30", "10:40", "11:00"), got)

	// завершение в другой день не освобождает время
	done.CompletedAt = ptr.Ptr(time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC))
	got = FilterSlots(slots("10:20"), FilterParams{
		Date:            monday,
		Window:          window,
		ServiceDuration: 20,
		Bookings:        []*domain.Booking{done},
		MasterID:        master(1),
	})
	assert.Empty(t, got)
}

func TestFilterSlots_PastTime(t *testing.T) {
	window := openWindow("10:00", "20:00")
	candidates := slots("10:00", "10:30", "11:00", "11:30")

	t.Run("today slots up to current minute are rejected", func(t *testing.T) {
		now := time.Date(2025, 10, 13, 10, 30, 0, 0, time.UTC)
		got := FilterSlots(candidates, FilterParams{Date: monday, Window: window, ServiceDuration: 30, Now: now})
		assert.Equal(t, slots("11:00", "11:30"), got)
	})

	t.Run("seconds do not matter", func(t *testing.T) {
		now := time.Date(2025, 10, 13, 10, 29, 59, 0, time.UTC)
		got := FilterSlots(candidates, FilterParams{Date: monday, Window: window, ServiceDuration: 30, Now: now})
		assert.Equal(t, slots("10:30", "11:00", "11:30"), got)
	})

	t.Run("past date rejects everything", func(t *testing.T) {
		now := time.Date(2025, 10, 14, 8, 0, 0, 0, time.UTC)
		assert.Empty(t, FilterSlots(candidates, FilterParams{Date: monday, Window: window, ServiceDuration: 30, Now: now}))
	})

	t.Run("future date ignores clock", func(t *testing.T) {
		now := time.Date(2025, 10, 12, 23, 0, 0, 0, time.UTC)
		got := FilterSlots(candidates, FilterParams{Date: monday, Window: window, ServiceDuration: 30, Now: now})
		assert.Equal(t, candidates, got)
	})

	t.Run("salon time zone", func(t *testing.T) {
		msk := time.FixedZone("MSK", 3*60*60)
		// 07:45 UTC = 10:45 MSK
		now := time.Date(2025, 10, 13, 7, 45, 0, 0, time.UTC)
		got := FilterSlots(candidates, FilterParams{Date: monday, Window: window, ServiceDuration: 30, Now: now, Location: msk})
		assert.Equal(t, slots("11:00", "11:30"), got)
	})
}

func TestFilterSlots_Properties(t *testing.T) {
	window := openWindow("09:00", "21:00",
		domain.BreakInterval{Start: tod("12:00"), End: tod("12:45")},
		domain.BreakInterval{Start: tod("17:10"), End: tod("17:40")},
	)
	bookings := []*domain.Booking{
		booking(1, master(1), "09:30", 90, domain.StatusConfirmed),
		booking(2, master(2), "14:00", 45, domain.StatusPending),
		booking(3, nil, "19:00", 30, domain.StatusConfirmed),
	}

	for _, step := range []int{10, 15, 30} {
		for _, duration := range []int{15, 45, 120} {
			for _, buffer := range []int{0, 10} {
				candidates := GenerateSlots(window, step)
				got := FilterSlots(candidates, FilterParams{
					Date:            monday,
					Window:          window,
					ServiceDuration: duration,
					BufferMinutes:   buffer,
					Bookings:        bookings,
					MasterPool:      []int64{1, 2},
				})

				// подмножество кандидатов в исходном порядке
				pos := 0
				for _, s := range got {
					for pos < len(candidates) && candidates[pos] != s {
						pos++
					}
					assert.Less(t, pos, len(candidates), "slot %s is not a candidate", s)
				}

				for _, s := range got {
					end := s.AddMinutes(duration + buffer)
					assert.False(t, s.IsBefore(window.Start))
					assert.False(t, end.IsAfter(window.End))
					for _, b := range window.Breaks {
						assert.False(t, s.IsBefore(b.End) && end.IsAfter(b.Start), "slot %s overlaps break", s)
					}
				}
			}
		}
	}
}

func TestFilterSlots_ClosedWindow(t *testing.T) {
	got := FilterSlots(slots("10:00"), FilterParams{Date: monday, Window: domain.ClosedWindow(), ServiceDuration: 30})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEffectiveDuration(t *testing.T) {
	b := booking(1, master(1), "10:00", 60, domain.StatusCompleted)
	assert.Equal(t, 60, EffectiveDuration(b, time.UTC))

	b.CompletedAt = ptr.Ptr(time.Date(2025, 10, 13, 9, 50, 0, 0, time.UTC))
	assert.Equal(t, 0, EffectiveDuration(b, time.UTC))

	b.CompletedAt = ptr.Ptr(time.Date(2025, 10, 13, 11, 30, 0, 0, time.UTC))
	assert.Equal(t, 60, EffectiveDuration(b, time.UTC))

	b.CompletedAt = ptr.Ptr(time.Date(2025, 10, 13, 10, 20, 40, 0, time.UTC))
	assert.Equal(t, 20, EffectiveDuration(b, time.UTC))

	b.Status = domain.StatusConfirmed
	assert.Equal(t, 60, EffectiveDuration(b, time.UTC))
}
