package cancelBooking

import (
	"context"
	"courtBooker/internal/http-server/handlers/booking/bookingerr"
	"courtBooker/internal/http-server/middleware/auth"
	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

type Response struct {
	response.Response
	Cancelled int64 `json:"cancelled"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCanceller
type BookingCanceller interface {
	Cancel(ctx context.Context, userID int64, ids ...int64) (int64, error)
}

// New cancels one of the caller's bookings. Repeating the request succeeds
// with nothing cancelled.
func New(log *slog.Logger, canceller BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.cancelBooking.New"

		log := log.With(
			slog.String("op", op),
		)

		userID, ok := auth.UserID(r.Context())
		if !ok {
			log.Error("user id missing from request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		bookingIDStr := chi.URLParam(r, "id")
		if bookingIDStr == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
		if err != nil || bookingID <= 0 {
			log.Error("invalid booking id format", slog.String("id", bookingIDStr))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking id format"))
			return
		}

		log = log.With(
			slog.Int64("user_id", userID),
			slog.Int64("booking_id", bookingID),
		)

		cancelled, err := canceller.Cancel(r.Context(), userID, bookingID)
		if err != nil {
			status, msg, ok := bookingerr.Status(err)
			if !ok {
				log.Error("failed to cancel booking", sl.Err(err))
				msg = "failed to cancel booking"
			} else {
				log.Info("cancellation rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("booking cancelled", slog.Int64("cancelled", cancelled))

		render.JSON(w, r, Response{
			Response:  response.OK(),
			Cancelled: cancelled,
		})
	}
}
