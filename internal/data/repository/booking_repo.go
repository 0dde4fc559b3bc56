package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SeatGuard inspects the seats already held for a showing while the showing
// is locked. A non-nil error aborts the booking and is returned unchanged.
type SeatGuard func(booked []string) error

type BookingRepository interface {
	// FindBookedSeats lists every seat held by a pending or confirmed
	// booking of the showing.
	FindBookedSeats(ctx context.Context, key entity.ShowingKey) ([]string, error)

	// CreateExclusive stores the booking and claims its seats atomically.
	// The showing is locked for the duration, so the guard sees a seat list
	// no concurrent booking can change before the insert.
	CreateExclusive(ctx context.Context, booking *entity.Booking, guard SeatGuard) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Cancel marks a holding booking cancelled and releases its seats.
	// It returns nil when the booking does not exist or no longer holds seats.
	Cancel(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const bookingColumns = `id, reference, user_id, user_email, movie_id, movie_title, poster_path,
		       theatre_id, show_time, seats, total_price, currency, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.UserEmail,
		&booking.MovieID,
		&booking.MovieTitle,
		&booking.PosterPath,
		&booking.TheatreID,
		&booking.ShowTime,
		&booking.Seats,
		&booking.TotalPrice,
		&booking.Currency,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func bookedSeats(ctx context.Context, q querier, key entity.ShowingKey) ([]string, error) {
	query := `
		SELECT DISTINCT seat
		FROM bookings, unnest(seats) AS seat
		WHERE movie_id = $1 AND theatre_id = $2 AND show_time = $3
		  AND status IN ('pending', 'confirmed')
		ORDER BY seat
	`

	rows, err := q.Query(ctx, query, key.MovieID, key.TheatreID, key.ShowTime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := []string{}
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

func (r *bookingRepository) FindBookedSeats(ctx context.Context, key entity.ShowingKey) ([]string, error) {
	seats, err := bookedSeats(ctx, r.db, key)
	if err != nil {
		r.log.Error("Failed to find booked seats",
			zap.Error(err),
			zap.String("showing", key.String()),
		)
		return nil, fmt.Errorf("%w: %s: %v", ErrBookedSeatsLookup, key.String(), err)
	}

	return seats, nil
}

func (r *bookingRepository) CreateExclusive(ctx context.Context, booking *entity.Booking, guard SeatGuard) error {
	key := booking.Key()
	log := r.log.With(
		zap.String("booking_id", booking.ID.String()),
		zap.String("showing", key.String()),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		log.Error("Failed to begin booking transaction", zap.Error(err))
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// serialises bookings of the same showing, released on commit or rollback
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key.String()); err != nil {
		log.Error("Failed to lock showing", zap.Error(err))
		return fmt.Errorf("lock showing %s: %w", key.String(), err)
	}

	booked, err := bookedSeats(ctx, tx, key)
	if err != nil {
		log.Error("Failed to find booked seats", zap.Error(err))
		return fmt.Errorf("%w: %s: %v", ErrBookedSeatsLookup, key.String(), err)
	}

	if guard != nil {
		if err := guard(booked); err != nil {
			return err
		}
	}

	insertBooking := `
		INSERT INTO bookings (id, reference, user_id, user_email, movie_id, movie_title, poster_path,
		                      theatre_id, show_time, seats, total_price, currency, status,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.Exec(ctx, insertBooking,
		booking.ID,
		booking.Reference,
		booking.UserID,
		booking.UserEmail,
		booking.MovieID,
		booking.MovieTitle,
		booking.PosterPath,
		booking.TheatreID,
		booking.ShowTime,
		booking.Seats,
		booking.TotalPrice,
		booking.Currency,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		log.Error("Failed to insert booking", zap.Error(err))
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	insertClaim := `
		INSERT INTO booking_seats (booking_id, movie_id, theatre_id, show_time, seat_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	batch := &pgx.Batch{}
	for _, seat := range booking.Seats {
		batch.Queue(insertClaim, booking.ID, key.MovieID, key.TheatreID, key.ShowTime, seat, booking.CreatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			log.Warn("Seat claim conflict", zap.Strings("seats", booking.Seats))
			return ErrSeatConflict
		}
		log.Error("Failed to claim seats", zap.Error(err))
		return fmt.Errorf("claim seats for booking %s: %w", booking.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrSeatConflict
		}
		log.Error("Failed to commit booking", zap.Error(err))
		return fmt.Errorf("commit booking %s: %w", booking.ID.String(), err)
	}

	log.Info("Booking stored", zap.Strings("seats", booking.Seats))
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE bookings
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, id); err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("release seats of booking %s: %w", id.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel %s: %w", id.String(), err)
	}

	return booking, nil
}
