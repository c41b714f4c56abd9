package mwratelimit

import (
	"context"
	"courtBooker/internal/http-server/middleware/auth"
	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Recorder interface {
	RateLimited()
}

// New rejects requests once the caller's bucket is empty. Authenticated
// callers are keyed by user id, anyone else by remote address. When the
// limiter itself fails the request is let through if failOpen is set.
func New(log *slog.Logger, limiter Limiter, rec Recorder, failOpen bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/ratelimit"),
		)

		log.Info("rate limit middleware enabled", slog.Bool("fail_open", failOpen))

		fn := func(w http.ResponseWriter, r *http.Request) {
			key := Key(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Error("rate limiter failed", slog.String("key", key), sl.Err(err))
				if !failOpen {
					render.Status(r, http.StatusServiceUnavailable)
					render.JSON(w, r, response.Error("service unavailable"))
					return
				}
				allowed = true
			}

			if !allowed {
				rec.RateLimited()
				log.Warn("rate limit exceeded", slog.String("key", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func Key(r *http.Request) string {
	if id, ok := auth.UserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip:" + host
}
