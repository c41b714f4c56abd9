package endTimes

import (
	"context"
	"courtBooker/internal/http-server/handlers/booking/bookingerr"
	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

// Request carries the selected start either as "HH:MM" or as an RFC 3339
// timestamp.
type Request struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
}

type Response struct {
	response.Response
	AvailableEndTimes []string `json:"available_end_times"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EndTimesProvider
type EndTimesProvider interface {
	FreeEndTimes(ctx context.Context, date, start string) ([]string, error)
}

func New(log *slog.Logger, provider EndTimesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.endTimes.New"

		log := log.With(
			slog.String("op", op),
		)

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

		times, err := provider.FreeEndTimes(r.Context(), req.Date, req.StartTime)
		if err != nil {
			status, msg, ok := bookingerr.Status(err)
			if !ok {
				log.Error("failed to get free end times", sl.Err(err))
				msg = "failed to get available end times"
			} else {
				log.Info("end times request rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("free end times computed", slog.Int("count", len(times)))

		render.JSON(w, r, Response{
			Response:          response.OK(),
			AvailableEndTimes: times,
		})
	}
}
