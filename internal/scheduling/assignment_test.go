package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

func pool(ids ...int64) []domain.Master {
	result := make([]domain.Master, len(ids))
	for i, id := range ids {
		result[i] = domain.Master{ID: id, Status: domain.MasterActive}
	}
	return result
}

func TestSelectNext(t *testing.T) {
	masters := pool(10, 20, 30)

	t.Run("starts after the cursor", func(t *testing.T) {
		got, ok := SelectNext(masters, monday, tod("10:00"), 0, nil)
		require.True(t, ok)
		assert.Equal(t, int64(20), got.Master.ID)
		assert.Equal(t, 1, got.Index)
		assert.False(t, got.Fallback)
	})

	t.Run("wraps around", func(t *testing.T) {
		got, ok := SelectNext(masters, monday, tod("10:00"), 2, nil)
		require.True(t, ok)
		assert.Equal(t, 0, got.Index)
	})

	t.Run("no previous assignment starts at the first master", func(t *testing.T) {
		got, ok := SelectNext(masters, monday, tod("10:00"), -1, nil)
		require.True(t, ok)
		assert.Equal(t, int64(10), got.Master.ID)
	})

	t.Run("cursor beyond shrunk pool", func(t *testing.T) {
		got, ok := SelectNext(masters, monday, tod("10:00"), 7, nil)
		require.True(t, ok)
		assert.Equal(t, 2, got.Index)
	})

	t.Run("skips master busy at exact time", func(t *testing.T) {
		bookings := []*domain.Booking{booking(1, master(20), "10:00", 60, domain.StatusConfirmed)}
		got, ok := SelectNext(masters, monday, tod("10:00"), 0, bookings)
		require.True(t, ok)
		assert.Equal(t, int64(30), got.Master.ID)
	})

	t.Run("only exact time collisions count", func(t *testing.T) {
		bookings := []*domain.Booking{booking(1, master(20), "09:30", 60, domain.StatusConfirmed)}
		got, ok := SelectNext(masters, monday, tod("10:00"), 0, bookings)
		require.True(t, ok)
		assert.Equal(t, int64(20), got.Master.ID)
	})

	t.Run("cancelled bookings are ignored", func(t *testing.T) {
		bookings := []*domain.Booking{booking(1, master(20), "10:00", 60, domain.StatusCancelled)}
		got, _ := SelectNext(masters, monday, tod("10:00"), 0, bookings)
		assert.Equal(t, int64(20), got.Master.ID)
	})

	t.Run("fallback to original next index when everyone is busy", func(t *testing.T) {
		bookings := []*domain.Booking{
			booking(1, master(10), "10:00", 60, domain.StatusConfirmed),
			booking(2, master(20), "10:00", 60, domain.StatusConfirmed),
			booking(3, master(30), "10:00", 60, domain.StatusPending),
		}
		got, ok := SelectNext(masters, monday, tod("10:00"), 1, bookings)
		require.True(t, ok)
		assert.True(t, got.Fallback)
		assert.Equal(t, 2, got.Index)
		assert.Equal(t, int64(30), got.Master.ID)
	})

	t.Run("empty pool", func(t *testing.T) {
		_, ok := SelectNext(nil, monday, tod("10:00"), 0, nil)
		assert.False(t, ok)
	})
}

func TestSelectNext_RoundRobinFairness(t *testing.T) {
	masters := pool(1, 2, 3, 4)
	cursor := -1
	var bookings []*domain.Booking
	seen := make(map[int64]int)

	times := []string{"10:00", "11:00", "12:00", "13:00"}
	for i, at := range times {
		got, ok := SelectNext(masters, monday, tod(at), cursor, bookings)
		require.True(t, ok)
		seen[got.Master.ID]++
		cursor = got.Index
		bookings = append(bookings, booking(int64(i+1), master(got.Master.ID), at, 60, domain.StatusConfirmed))
	}

	assert.Len(t, seen, len(masters))
	for id, count := range seen {
		assert.Equal(t, 1, count, "master %d", id)
	}
}

func TestActiveMasters(t *testing.T) {
	masters := []domain.Master{
		{ID: 1, Status: domain.MasterActive},
		{ID: 2, Status: domain.MasterTerminated},
		{ID: 3, Status: domain.MasterActive},
	}
	got := ActiveMasters(masters)
	assert.Equal(t, []int64{1, 3}, MasterIDs(got))
}
