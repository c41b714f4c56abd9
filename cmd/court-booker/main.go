package main

import (
	"context"
	"courtBooker/internal/booking"
	"courtBooker/internal/config"
	"courtBooker/internal/http-server/handlers/booking/cancelBooking"
	"courtBooker/internal/http-server/handlers/booking/confirmBooking"
	"courtBooker/internal/http-server/handlers/booking/endTimes"
	"courtBooker/internal/http-server/handlers/booking/getBookings"
	"courtBooker/internal/http-server/handlers/booking/myBookings"
	"courtBooker/internal/http-server/handlers/booking/startTimes"
	"courtBooker/internal/http-server/middleware/auth"
	"courtBooker/internal/http-server/middleware/mwlogger"
	"courtBooker/internal/http-server/middleware/mwratelimit"
	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/handlers/slogpretty"
	"courtBooker/internal/lib/logger/sl"
	"courtBooker/internal/lib/wallclock"
	"courtBooker/internal/metrics"
	"courtBooker/internal/ratelimit"
	"courtBooker/internal/schedule"
	"courtBooker/internal/storage/memory"
	"courtBooker/internal/storage/postgres"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

type bookingStore interface {
	booking.Storage
	PurgeBefore(ctx context.Context, date time.Time) (int64, error)
	Close() error
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting court booker", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage))
	log.Debug("Debug messages are enabled")

	clock, err := wallclock.Load(cfg.Venue.Timezone)
	if err != nil {
		log.Error("failed to load venue timezone", sl.Err(err))
		os.Exit(1)
	}

	hours, err := schedule.ParseHours(cfg.Venue.OpenTime, cfg.Venue.CloseTime)
	if err != nil {
		log.Error("invalid opening hours", sl.Err(err))
		os.Exit(1)
	}

	storage, err := setupStorage(cfg, log)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookings(reg)

	service := booking.New(log, storage, clock, hours, booking.Policy{
		MaxDuration:       cfg.Venue.MaxDuration,
		BookingWindowDays: cfg.Venue.BookingWindowDays,
	}, bookingMetrics)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	})
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	var rdb *redis.Client

	router.Route("/bookings", func(r chi.Router) {
		r.Use(auth.New(log, cfg.Auth.JWTSecret))

		if cfg.RateLimit.Enabled {
			var limiter mwratelimit.Limiter
			limiter, rdb = setupLimiter(cfg)
			r.Use(mwratelimit.New(log, limiter, bookingMetrics, cfg.RateLimit.FailOpen))
		}

		r.Post("/start-times", startTimes.New(log, service))
		r.Post("/end-times", endTimes.New(log, service))
		r.Post("/", confirmBooking.New(log, service))
		r.Get("/", getBookings.New(log, service))
		r.Get("/mine", myBookings.New(log, service))
		r.Delete("/{id}", cancelBooking.New(log, service))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	retentionCtx, stopRetention := context.WithCancel(context.Background())
	go runRetention(retentionCtx, log, storage, clock, bookingMetrics, cfg.Retention.Interval)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	stopRetention()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if rdb != nil {
		if err = rdb.Close(); err != nil {
			log.Error("failed to close redis connection", sl.Err(err))
		}
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(cfg *config.Config, log *slog.Logger) (bookingStore, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("using in-memory storage, bookings are lost on restart")
		return memory.New(), nil
	case config.StoragePostgres:
		storage, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			return nil, err
		}

		if cfg.Database.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err = storage.Migrate(ctx); err != nil {
				storage.Close()
				return nil, err
			}
			log.Info("database schema applied")
		}

		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

// setupLimiter returns the configured limiter and, for the redis backend,
// the client to close on shutdown.
func setupLimiter(cfg *config.Config) (mwratelimit.Limiter, *redis.Client) {
	if cfg.RateLimit.Backend != config.LimiterRedis {
		return ratelimit.NewMemory(cfg.RateLimit.Rate, cfg.RateLimit.Burst), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return ratelimit.NewRedis(rdb, cfg.RateLimit.Rate, cfg.RateLimit.Burst, "court:ratelimit"), rdb
}

// runRetention deletes bookings dated before the venue's current day on
// every tick until ctx is cancelled.
func runRetention(
	ctx context.Context,
	log *slog.Logger,
	storage bookingStore,
	clock *wallclock.Clock,
	m *metrics.Bookings,
	interval time.Duration,
) {
	log = log.With(slog.String("component", "retention"))

	if interval <= 0 {
		log.Info("retention disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := storage.PurgeBefore(ctx, clock.Today())
			if err != nil {
				log.Error("failed to purge past bookings", sl.Err(err))
				continue
			}
			m.Purged(n)
			if n > 0 {
				log.Info("past bookings purged", slog.Int64("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
