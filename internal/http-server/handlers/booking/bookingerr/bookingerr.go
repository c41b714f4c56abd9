// Package bookingerr maps booking errors to HTTP statuses.
package bookingerr

import (
	"courtBooker/internal/booking"
	"errors"
	"net/http"
)

var clientErrors = []struct {
	err    error
	status int
}{
	{booking.ErrInvalidTimeFormat, http.StatusBadRequest},
	{booking.ErrPastDate, http.StatusBadRequest},
	{booking.ErrOutOfHours, http.StatusBadRequest},
	{booking.ErrInvalidInterval, http.StatusBadRequest},
	{booking.ErrAmbiguousTime, http.StatusBadRequest},
	{booking.ErrTooFarAhead, http.StatusBadRequest},
	{booking.ErrSlotConflict, http.StatusConflict},
	{booking.ErrNotFound, http.StatusNotFound},
}

// Status returns the HTTP status and client message for err. ok is false for
// errors the client did not cause; those get a 500 and a handler-specific
// message.
func Status(err error) (status int, msg string, ok bool) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			return ce.status, ce.err.Error(), true
		}
	}

	return http.StatusInternalServerError, "", false
}
