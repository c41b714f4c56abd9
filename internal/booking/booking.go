// Package booking implements court availability and booking confirmation
// for one venue. All slot arithmetic happens on venue-local wall-clock
// minutes; the store only ever sees instants and calendar dates.
package booking

import (
	"context"
	"courtBooker/internal/lib/logger/sl"
	"courtBooker/internal/lib/wallclock"
	"courtBooker/internal/metrics"
	"courtBooker/internal/models"
	"courtBooker/internal/schedule"
	"courtBooker/internal/storage"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid date or time format")
	ErrPastDate          = errors.New("booking date is in the past")
	ErrOutOfHours        = errors.New("time is outside opening hours or not on a slot boundary")
	ErrInvalidInterval   = errors.New("invalid booking interval")
	ErrAmbiguousTime     = errors.New("time falls in a daylight saving transition")
	ErrTooFarAhead       = errors.New("booking date is beyond the booking window")
	ErrSlotConflict      = errors.New("slot already booked")
	ErrNotFound          = errors.New("booking not found")
)

type Storage interface {
	BookingsByDate(ctx context.Context, date time.Time) ([]models.Booking, error)
	BookingsByUser(ctx context.Context, userID int64, from time.Time) ([]models.Booking, error)
	ConfirmBooking(ctx context.Context, b models.Booking) (models.Booking, []models.Booking, error)
	CancelBookings(ctx context.Context, userID int64, ids []int64) (int64, error)
}

// Policy holds optional limits. Zero values disable them.
type Policy struct {
	MaxDuration       time.Duration
	BookingWindowDays int
}

type Service struct {
	log     *slog.Logger
	store   Storage
	clock   *wallclock.Clock
	hours   schedule.Hours
	policy  Policy
	metrics *metrics.Bookings
}

func New(log *slog.Logger, store Storage, clock *wallclock.Clock, hours schedule.Hours, policy Policy, m *metrics.Bookings) *Service {
	return &Service{
		log:     log,
		store:   store,
		clock:   clock,
		hours:   hours,
		policy:  policy,
		metrics: m,
	}
}

// FreeStartTimes lists the start slots on date that no confirmed booking
// occupies, as "HH:MM". On the current day, slots already in the past are
// left out.
func (s *Service) FreeStartTimes(ctx context.Context, date string) ([]string, error) {
	const op = "booking.FreeStartTimes"

	day, err := s.bookableDate(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	busy, err := s.busy(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.AvailabilityQuery("start")

	free := schedule.FreeStarts(s.hours.StartSlots(), busy)

	return schedule.Format(s.upcoming(day, free)), nil
}

// FreeEndTimes lists the end slots available after start on date, up to the
// next confirmed booking. start is "HH:MM" or an RFC 3339 timestamp.
func (s *Service) FreeEndTimes(ctx context.Context, date, start string) ([]string, error) {
	const op = "booking.FreeEndTimes"

	day, err := s.bookableDate(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	startMin, err := s.selectedStart(day, start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.hours.IsStart(startMin) {
		return nil, fmt.Errorf("%s: start %s: %w", op, schedule.FormatMinutes(startMin), ErrOutOfHours)
	}

	busy, err := s.busy(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.AvailabilityQuery("end")

	free := schedule.FreeEnds(s.hours.EndSlots(), busy, startMin)

	return schedule.Format(s.resolvable(day, free)), nil
}

// Confirm validates the proposed booking and stores it unless it overlaps a
// confirmed booking. It returns the new booking and every confirmed booking
// on the same date.
func (s *Service) Confirm(ctx context.Context, userID int64, date, start, end string) (models.Booking, []models.Booking, error) {
	const op = "booking.Confirm"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
		slog.String("date", date),
	)

	proposed, err := s.validate(date, start, end)
	if err != nil {
		s.metrics.Confirmation(metrics.OutcomeRejected, 0)
		return models.Booking{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	proposed.UserID = userID

	began := time.Now()
	created, bookings, err := s.store.ConfirmBooking(ctx, proposed)
	elapsed := time.Since(began).Seconds()
	if err != nil {
		if errors.Is(err, storage.ErrSlotConflict) {
			s.metrics.Confirmation(metrics.OutcomeConflict, elapsed)
			log.Info("booking conflicts with an existing booking")
			return models.Booking{}, nil, fmt.Errorf("%s: %w", op, ErrSlotConflict)
		}

		s.metrics.Confirmation(metrics.OutcomeError, elapsed)
		log.Error("failed to store booking", sl.Err(err))
		return models.Booking{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.Confirmation(metrics.OutcomeConfirmed, elapsed)
	log.Info("booking confirmed", slog.Int64("booking_id", created.ID))

	return s.local(created), s.localAll(bookings), nil
}

// Cancel moves the user's bookings to Cancelled. Cancelling a booking twice,
// or one that no longer exists, is not an error.
func (s *Service) Cancel(ctx context.Context, userID int64, ids ...int64) (int64, error) {
	const op = "booking.Cancel"

	n, err := s.store.CancelBookings(ctx, userID, ids)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.Cancelled(n)

	return n, nil
}

// BookingsForDate lists confirmed bookings on date in start order.
func (s *Service) BookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	const op = "booking.BookingsForDate"

	day, err := wallclock.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %q: %w", op, date, ErrInvalidTimeFormat)
	}

	bookings, err := s.store.BookingsByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.localAll(bookings), nil
}

// BookingsForUser lists the user's bookings from today on, cancelled ones
// included.
func (s *Service) BookingsForUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	const op = "booking.BookingsForUser"

	bookings, err := s.store.BookingsByUser(ctx, userID, s.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.localAll(bookings), nil
}

func (s *Service) validate(date, start, end string) (models.Booking, error) {
	day, err := wallclock.ParseDate(date)
	if err != nil {
		return models.Booking{}, fmt.Errorf("date %q: %w", date, ErrInvalidTimeFormat)
	}

	startAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return models.Booking{}, fmt.Errorf("start %q: %w", start, ErrInvalidTimeFormat)
	}

	endAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return models.Booking{}, fmt.Errorf("end %q: %w", end, ErrInvalidTimeFormat)
	}

	startAt, endAt = startAt.In(s.clock.Location()), endAt.In(s.clock.Location())

	if day.Before(s.clock.Today()) {
		return models.Booking{}, fmt.Errorf("date %s: %w", date, ErrPastDate)
	}

	if !endAt.After(startAt) {
		return models.Booking{}, fmt.Errorf("end %s is not after start %s: %w", end, start, ErrInvalidInterval)
	}

	startDay, startMin := s.clock.Split(startAt)
	endDay, endMin := s.clock.Split(endAt)
	if !startDay.Equal(day) || !endDay.Equal(day) {
		return models.Booking{}, fmt.Errorf("start and end must fall on %s: %w", date, ErrInvalidInterval)
	}

	for _, t := range []struct {
		at     time.Time
		minute int
	}{{startAt, startMin}, {endAt, endMin}} {
		resolved, err := s.clock.At(day, t.minute)
		if err != nil || !resolved.Equal(t.at) {
			return models.Booking{}, fmt.Errorf("%s: %w", t.at.Format(time.RFC3339), ErrAmbiguousTime)
		}
	}

	if !s.hours.IsStart(startMin) {
		return models.Booking{}, fmt.Errorf("start %s: %w", schedule.FormatMinutes(startMin), ErrOutOfHours)
	}
	if !s.hours.IsEnd(endMin) {
		return models.Booking{}, fmt.Errorf("end %s: %w", schedule.FormatMinutes(endMin), ErrOutOfHours)
	}

	if startAt.Before(s.clock.Now()) {
		return models.Booking{}, fmt.Errorf("start %s: %w", start, ErrPastDate)
	}

	if s.policy.MaxDuration > 0 && endAt.Sub(startAt) > s.policy.MaxDuration {
		return models.Booking{}, fmt.Errorf("longer than %s: %w", s.policy.MaxDuration, ErrInvalidInterval)
	}

	if err := s.withinWindow(day); err != nil {
		return models.Booking{}, err
	}

	return models.Booking{
		Date:      models.Date{Time: day},
		StartTime: startAt,
		EndTime:   endAt,
	}, nil
}

// bookableDate parses date and rejects days availability is never offered for.
func (s *Service) bookableDate(date string) (time.Time, error) {
	day, err := wallclock.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", date, ErrInvalidTimeFormat)
	}

	if day.Before(s.clock.Today()) {
		return time.Time{}, fmt.Errorf("date %s: %w", date, ErrPastDate)
	}

	if err = s.withinWindow(day); err != nil {
		return time.Time{}, err
	}

	return day, nil
}

func (s *Service) withinWindow(day time.Time) error {
	if s.policy.BookingWindowDays <= 0 {
		return nil
	}

	last := s.clock.Today().AddDate(0, 0, s.policy.BookingWindowDays)
	if day.After(last) {
		return fmt.Errorf("date %s is after %s: %w", day.Format(wallclock.DateLayout), last.Format(wallclock.DateLayout), ErrTooFarAhead)
	}

	return nil
}

func (s *Service) selectedStart(day time.Time, start string) (int, error) {
	if m, err := schedule.ParseMinutes(start); err == nil {
		return m, nil
	}

	at, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return 0, fmt.Errorf("start %q: %w", start, ErrInvalidTimeFormat)
	}

	startDay, m := s.clock.Split(at)
	if !startDay.Equal(day) {
		return 0, fmt.Errorf("start %s is not on %s: %w", start, day.Format(wallclock.DateLayout), ErrInvalidInterval)
	}

	return m, nil
}

// busy converts the date's confirmed bookings into wall-clock intervals.
func (s *Service) busy(ctx context.Context, day time.Time) ([]schedule.Interval, error) {
	bookings, err := s.store.BookingsByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(bookings))
	for _, b := range bookings {
		_, start := s.clock.Split(b.StartTime)
		_, end := s.clock.Split(b.EndTime)
		busy = append(busy, schedule.Interval{Start: start, End: end})
	}

	return busy, nil
}

// upcoming drops slots that cannot be booked any more: those already past on
// the current day and those a DST transition makes unresolvable.
func (s *Service) upcoming(day time.Time, slots []int) []int {
	now := s.clock.Now()

	out := make([]int, 0, len(slots))
	for _, m := range slots {
		at, err := s.clock.At(day, m)
		if err != nil || at.Before(now) {
			continue
		}
		out = append(out, m)
	}

	return out
}

func (s *Service) resolvable(day time.Time, slots []int) []int {
	out := make([]int, 0, len(slots))
	for _, m := range slots {
		if _, err := s.clock.At(day, m); err == nil {
			out = append(out, m)
		}
	}

	return out
}

func (s *Service) local(b models.Booking) models.Booking {
	loc := s.clock.Location()

	b.StartTime = b.StartTime.In(loc)
	b.EndTime = b.EndTime.In(loc)
	b.CreatedAt = b.CreatedAt.In(loc)
	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.In(loc)
		b.CancelledAt = &cancelled
	}

	return b
}

func (s *Service) localAll(bookings []models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, s.local(b))
	}

	return out
}
