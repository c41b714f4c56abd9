package myBookings

import (
	"context"
	"courtBooker/internal/http-server/middleware/auth"
	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"courtBooker/internal/models"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type Response struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserBookingsLister
type UserBookingsLister interface {
	BookingsForUser(ctx context.Context, userID int64) ([]models.Booking, error)
}

// New lists the caller's bookings from today on, cancelled ones included.
func New(log *slog.Logger, lister UserBookingsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.myBookings.New"

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

		log = log.With(slog.Int64("user_id", userID))

		bookings, err := lister.BookingsForUser(r.Context(), userID)
		if err != nil {
			log.Error("failed to get user bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get bookings"))
			return
		}

		log.Info("user bookings retrieved", slog.Int("count", len(bookings)))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Bookings: bookings,
		})
	}
}
