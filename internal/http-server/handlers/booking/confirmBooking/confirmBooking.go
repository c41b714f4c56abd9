package confirmBooking

import (
	"context"
	"courtBooker/internal/http-server/handlers/booking/bookingerr"
	"courtBooker/internal/http-server/middleware/auth"
	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"courtBooker/internal/models"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

// Request times are RFC 3339 timestamps with a UTC offset.
type Request struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type Response struct {
	response.Response
	Booking  *models.Booking  `json:"booking,omitempty"`
	Bookings []models.Booking `json:"bookings,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingConfirmer
type BookingConfirmer interface {
	Confirm(ctx context.Context, userID int64, date, start, end string) (models.Booking, []models.Booking, error)
}

func New(log *slog.Logger, confirmer BookingConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.confirmBooking.New"

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

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		created, bookings, err := confirmer.Confirm(r.Context(), userID, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			status, msg, ok := bookingerr.Status(err)
			if !ok {
				log.Error("failed to confirm booking", sl.Err(err))
				msg = "failed to confirm booking"
			} else {
				log.Info("booking rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("booking confirmed", slog.Int64("booking_id", created.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: response.OK(),
			Booking:  &created,
			Bookings: bookings,
		})
	}
}
