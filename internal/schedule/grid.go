// Package schedule holds the slot arithmetic for a single venue-day. Times
// are minutes since local midnight.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Step is the slot granularity in minutes.
const Step = 15

var ErrInvalidClock = errors.New("invalid clock reading")

// Grid returns {from, from+Step, ..., to}, inclusive of both bounds. When
// to-from is not a multiple of Step the last boundary is to itself.
func Grid(from, to int) []int {
	if to < from {
		return nil
	}

	grid := make([]int, 0, (to-from)/Step+1)
	for m := from; m < to; m += Step {
		grid = append(grid, m)
	}

	return append(grid, to)
}

// Hours is the bookable window of a day. Close is the time the court
// closes, so no booking may end after it.
type Hours struct {
	Open  int
	Close int
}

func ParseHours(open, close string) (Hours, error) {
	o, err := ParseMinutes(open)
	if err != nil {
		return Hours{}, fmt.Errorf("open time: %w", err)
	}

	c, err := ParseMinutes(close)
	if err != nil {
		return Hours{}, fmt.Errorf("close time: %w", err)
	}

	if c-o < Step {
		return Hours{}, fmt.Errorf("close time %s must be at least %d minutes after open time %s", close, Step, open)
	}

	return Hours{Open: o, Close: c}, nil
}

// StartSlots are the valid booking starts: open up to the last slot before close.
func (h Hours) StartSlots() []int {
	return Grid(h.Open, h.Close-Step)
}

// EndSlots are the valid booking ends: one slot after open up to close.
func (h Hours) EndSlots() []int {
	return Grid(h.Open+Step, h.Close)
}

func (h Hours) IsStart(m int) bool {
	return slices.Contains(h.StartSlots(), m)
}

func (h Hours) IsEnd(m int) bool {
	return slices.Contains(h.EndSlots(), m)
}

// ParseMinutes reads an "HH:MM" clock reading.
func ParseMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidClock)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidClock)
	}

	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidClock)
	}

	return h*60 + m, nil
}

func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func Format(ms []int) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, FormatMinutes(m))
	}

	return out
}
