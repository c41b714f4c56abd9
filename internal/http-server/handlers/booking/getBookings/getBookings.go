package getBookings

import (
	"context"
	"courtBooker/internal/http-server/handlers/booking/bookingerr"
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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsLister
type BookingsLister interface {
	BookingsForDate(ctx context.Context, date string) ([]models.Booking, error)
}

func New(log *slog.Logger, lister BookingsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getBookings.New"

		log := log.With(
			slog.String("op", op),
		)

		date := r.URL.Query().Get("date")
		if date == "" {
			log.Error("date is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("date is required"))
			return
		}

		log = log.With(slog.String("date", date))

		bookings, err := lister.BookingsForDate(r.Context(), date)
		if err != nil {
			status, msg, ok := bookingerr.Status(err)
			if !ok {
				log.Error("failed to get bookings", sl.Err(err))
				msg = "failed to get bookings"
			}
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("bookings retrieved", slog.Int("count", len(bookings)))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Bookings: bookings,
		})
	}
}
