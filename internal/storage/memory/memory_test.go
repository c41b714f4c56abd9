package memory

import (
	"context"
	"courtBooker/internal/models"
	"courtBooker/internal/storage"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)

func booking(userID int64, date time.Time, startHour, endHour int) models.Booking {
	return models.Booking{
		UserID:    userID,
		Date:      models.Date{Time: date},
		StartTime: date.Add(time.Duration(startHour) * time.Hour),
		EndTime:   date.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestConfirmBookingOverlap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()

	_, _, err := s.ConfirmBooking(ctx, booking(1, day, 10, 11))
	require.NoError(t, err)

	testCases := []struct {
		name       string
		start, end int
		wantErr    error
	}{
		{name: "Abuts before", start: 9, end: 10},
		{name: "Same interval", start: 10, end: 11, wantErr: storage.ErrSlotConflict},
		{name: "Straddles", start: 9, end: 12, wantErr: storage.ErrSlotConflict},
		{name: "Abuts after", start: 11, end: 12},
	}

	for _, tc := range testCases {
		_, _, err := s.ConfirmBooking(ctx, booking(2, day, tc.start, tc.end))
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr, tc.name)
		} else {
			assert.NoError(t, err, tc.name)
		}
	}

	list, err := s.BookingsByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].StartTime.Before(list[1].StartTime))
}

func TestConfirmBookingConcurrent(t *testing.T) {
	t.Parallel()

	s := New()

	const attempts = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()

			_, _, err := s.ConfirmBooking(context.Background(), booking(user, day, 9, 10))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, storage.ErrSlotConflict):
				conflicts++
			}
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelBookings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()

	own, _, err := s.ConfirmBooking(ctx, booking(1, day, 9, 10))
	require.NoError(t, err)
	other, _, err := s.ConfirmBooking(ctx, booking(2, day, 10, 11))
	require.NoError(t, err)

	_, err = s.CancelBookings(ctx, 1, []int64{own.ID, other.ID})
	assert.ErrorIs(t, err, storage.ErrBookingNotFound)

	list, err := s.BookingsByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, list, 2, "nothing is cancelled when one id is foreign")

	n, err := s.CancelBookings(ctx, 1, []int64{own.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.CancelBookings(ctx, 1, []int64{own.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	list, err = s.BookingsByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)

	mine, err := s.BookingsByUser(ctx, 1, day)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusCancelled, mine[0].Status)
	assert.NotNil(t, mine[0].CancelledAt)

	_, _, err = s.ConfirmBooking(ctx, booking(3, day, 9, 10))
	assert.NoError(t, err, "a cancelled slot can be booked again")
}

func TestPurgeBefore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()
	yesterday := day.AddDate(0, 0, -1)

	_, _, err := s.ConfirmBooking(ctx, booking(1, yesterday, 9, 10))
	require.NoError(t, err)
	_, _, err = s.ConfirmBooking(ctx, booking(1, day, 9, 10))
	require.NoError(t, err)

	n, err := s.PurgeBefore(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mine, err := s.BookingsByUser(ctx, 1, yesterday)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Date.Equal(day))
}
