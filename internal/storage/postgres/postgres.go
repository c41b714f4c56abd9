package postgres

import (
	"context"
	"courtBooker/internal/config"
	"courtBooker/internal/models"
	"courtBooker/internal/storage"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// bookingLockNamespace is the first key of the per-date advisory lock.
const bookingLockNamespace = 7201

//go:embed schema.sql
var schema string

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

const bookingColumns = `id, user_id, date, start_time, end_time, status, created_at, cancelled_at`

func (s *Storage) BookingsByDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date = $1 AND status = $2
		ORDER BY start_time ASC`

	bookings, err := queryBookings(ctx, s.DB, query, date, models.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings for date: %w", err)
	}

	return bookings, nil
}

func (s *Storage) BookingsByUser(ctx context.Context, userID int64, from time.Time) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND date >= $2
		ORDER BY start_time ASC`

	bookings, err := queryBookings(ctx, s.DB, query, userID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}

	return bookings, nil
}

// ConfirmBooking inserts b unless it overlaps a confirmed booking on the same
// date. The check and the insert run under a transaction-scoped advisory lock
// keyed by the date, so concurrent confirmations for one date are serialized.
func (s *Storage) ConfirmBooking(ctx context.Context, b models.Booking) (models.Booking, []models.Booking, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, bookingLockNamespace, dateLockKey(b.Date.Time))
	if err != nil {
		return models.Booking{}, nil, fmt.Errorf("failed to lock booking date: %w", err)
	}

	var overlapping bool
	checkQuery := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE date = $1 AND status = $2
			AND start_time < $4 AND end_time > $3
		)`

	err = tx.QueryRowContext(ctx, checkQuery, b.Date.Time, models.StatusConfirmed, b.StartTime, b.EndTime).Scan(&overlapping)
	if err != nil {
		return models.Booking{}, nil, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	if overlapping {
		return models.Booking{}, nil, storage.ErrSlotConflict
	}

	insertQuery := `
		INSERT INTO bookings (user_id, date, start_time, end_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	b.Status = models.StatusConfirmed
	err = tx.QueryRowContext(ctx, insertQuery, b.UserID, b.Date.Time, b.StartTime, b.EndTime, b.Status).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return models.Booking{}, nil, fmt.Errorf("failed to create booking: %w", err)
	}

	listQuery := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date = $1 AND status = $2
		ORDER BY start_time ASC`

	bookings, err := queryBookings(ctx, tx, listQuery, b.Date.Time, models.StatusConfirmed)
	if err != nil {
		return models.Booking{}, nil, fmt.Errorf("failed to get bookings for date: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.Booking{}, nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return b, bookings, nil
}

// CancelBookings marks the user's confirmed bookings among ids as cancelled.
// Unknown ids and bookings that are already cancelled are skipped. If any id
// belongs to another user nothing is cancelled and ErrBookingNotFound is
// returned.
func (s *Storage) CancelBookings(ctx context.Context, userID int64, ids []int64) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, user_id, status
		FROM bookings
		WHERE id = ANY($1)
		FOR UPDATE`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to lock bookings: %w", err)
	}

	var cancel []int64
	for rows.Next() {
		var (
			id, owner int64
			status    models.Status
		)
		if err = rows.Scan(&id, &owner, &status); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan booking: %w", err)
		}

		if owner != userID {
			rows.Close()
			return 0, fmt.Errorf("booking %d: %w", id, storage.ErrBookingNotFound)
		}

		if status == models.StatusConfirmed {
			cancel = append(cancel, id)
		}
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("error iterating bookings: %w", err)
	}
	rows.Close()

	if len(cancel) == 0 {
		return 0, tx.Commit()
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET status = $1, cancelled_at = NOW()
		WHERE id = ANY($2)`, models.StatusCancelled, pq.Array(cancel))
	if err != nil {
		return 0, fmt.Errorf("failed to cancel bookings: %w", err)
	}

	cancelled, _ := result.RowsAffected()

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	return cancelled, nil
}

// PurgeBefore deletes every booking dated before date.
func (s *Storage) PurgeBefore(ctx context.Context, date time.Time) (int64, error) {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM bookings WHERE date < $1`, date)
	if err != nil {
		return 0, fmt.Errorf("failed to purge old bookings: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	return rowsAffected, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryBookings(ctx context.Context, q querier, query string, args ...any) ([]models.Booking, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var (
			booking     models.Booking
			cancelledAt sql.NullTime
		)
		err = rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.Date.Time,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.CreatedAt,
			&cancelledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		if cancelledAt.Valid {
			booking.CancelledAt = &cancelledAt.Time
		}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// dateLockKey packs a calendar date as YYYYMMDD.
func dateLockKey(date time.Time) int32 {
	y, m, d := date.Date()

	return int32(y*10000 + int(m)*100 + d)
}
