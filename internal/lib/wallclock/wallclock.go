// Package wallclock converts between instants and venue-local wall-clock
// readings (calendar date plus minutes since midnight).
//
// Calendar dates are carried as time.Time values at midnight UTC, the same
// shape lib/pq returns for DATE columns.
package wallclock

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrNonexistent = errors.New("local time does not exist")
	ErrAmbiguous   = errors.New("local time is ambiguous")
)

type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location) *Clock {
	return &Clock{loc: loc, now: time.Now}
}

// Load builds a Clock for an IANA timezone name.
func Load(name string) (*Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	return New(loc), nil
}

// WithNow returns a copy of c that reads the current time from now.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: now}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is the venue-local calendar date.
func (c *Clock) Today() time.Time {
	return DateOf(c.Now())
}

// Split returns the venue-local calendar date of t and its wall-clock
// minutes since midnight.
func (c *Clock) Split(t time.Time) (time.Time, int) {
	local := t.In(c.loc)

	return DateOf(local), local.Hour()*60 + local.Minute()
}

// At resolves the wall-clock reading minute on date to an instant. Readings
// skipped by a DST gap return ErrNonexistent, readings repeated by a DST fold
// return ErrAmbiguous.
func (c *Clock) At(date time.Time, minute int) (time.Time, error) {
	y, m, d := date.Date()
	h, mi := minute/60, minute%60
	wall := time.Date(y, m, d, h, mi, 0, 0, time.UTC)

	// Every offset in effect within half a day of the reading is a candidate.
	probe := time.Date(y, m, d, h, mi, 0, 0, c.loc)
	offsets := make([]int, 0, 2)
	for _, p := range []time.Time{probe.Add(-12 * time.Hour), probe, probe.Add(12 * time.Hour)} {
		_, off := p.Zone()
		if !slices.Contains(offsets, off) {
			offsets = append(offsets, off)
		}
	}

	var found []time.Time
	for _, off := range offsets {
		t := wall.Add(-time.Duration(off) * time.Second).In(c.loc)
		if sameWall(t, y, m, d, h, mi) && !slices.ContainsFunc(found, t.Equal) {
			found = append(found, t)
		}
	}

	switch len(found) {
	case 0:
		return time.Time{}, fmt.Errorf("%s %02d:%02d in %s: %w", date.Format(DateLayout), h, mi, c.loc, ErrNonexistent)
	case 1:
		return found[0], nil
	default:
		return time.Time{}, fmt.Errorf("%s %02d:%02d in %s: %w", date.Format(DateLayout), h, mi, c.loc, ErrAmbiguous)
	}
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOf strips the clock reading from t, keeping its calendar date in t's
// own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameWall(t time.Time, y int, m time.Month, d, h, mi int) bool {
	ty, tm, td := t.Date()

	return ty == y && tm == m && td == d && t.Hour() == h && t.Minute() == mi
}
