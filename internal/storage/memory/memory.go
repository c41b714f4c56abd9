// Package memory is an in-process booking store. A single mutex serializes
// every check-then-insert, so it is only suitable for one running instance.
package memory

import (
	"context"
	"courtBooker/internal/models"
	"courtBooker/internal/storage"
	"fmt"
	"sort"
	"sync"
	"time"
)

type Storage struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]models.Booking
	now      func() time.Time
}

func New() *Storage {
	return &Storage{
		bookings: make(map[int64]models.Booking),
		now:      time.Now,
	}
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) BookingsByDate(_ context.Context, date time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.confirmedOn(date), nil
}

func (s *Storage) BookingsByUser(_ context.Context, userID int64, from time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(b models.Booking) bool {
		return b.UserID == userID && !b.Date.Before(from)
	}), nil
}

func (s *Storage) ConfirmBooking(_ context.Context, b models.Booking) (models.Booking, []models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.confirmedOn(b.Date.Time) {
		if existing.StartTime.Before(b.EndTime) && existing.EndTime.After(b.StartTime) {
			return models.Booking{}, nil, storage.ErrSlotConflict
		}
	}

	s.nextID++
	b.ID = s.nextID
	b.Status = models.StatusConfirmed
	b.CreatedAt = s.now()
	b.CancelledAt = nil
	s.bookings[b.ID] = b

	return b, s.confirmedOn(b.Date.Time), nil
}

func (s *Storage) CancelBookings(_ context.Context, userID int64, ids []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cancel []int64
	for _, id := range ids {
		b, ok := s.bookings[id]
		if !ok {
			continue
		}
		if b.UserID != userID {
			return 0, fmt.Errorf("booking %d: %w", id, storage.ErrBookingNotFound)
		}
		if b.Status == models.StatusConfirmed {
			cancel = append(cancel, id)
		}
	}

	now := s.now()
	for _, id := range cancel {
		b := s.bookings[id]
		b.Status = models.StatusCancelled
		b.CancelledAt = &now
		s.bookings[id] = b
	}

	return int64(len(cancel)), nil
}

func (s *Storage) PurgeBefore(_ context.Context, date time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for id, b := range s.bookings {
		if b.Date.Before(date) {
			delete(s.bookings, id)
			purged++
		}
	}

	return purged, nil
}

func (s *Storage) confirmedOn(date time.Time) []models.Booking {
	return s.filter(func(b models.Booking) bool {
		return b.Status == models.StatusConfirmed && b.Date.Equal(date)
	})
}

// filter returns matching bookings ordered by start time.
func (s *Storage) filter(keep func(models.Booking) bool) []models.Booking {
	out := []models.Booking{}
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out
}
