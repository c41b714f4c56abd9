package storage

import "errors"

var (
	ErrSlotConflict    = errors.New("slot already booked")
	ErrBookingNotFound = errors.New("booking not found")
)
