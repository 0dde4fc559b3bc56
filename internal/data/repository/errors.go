package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSeatConflict means another booking already holds one of the seats.
	ErrSeatConflict = errors.New("seat already claimed for showing")

	// ErrBookedSeatsLookup means the held seats of a showing could not be read.
	ErrBookedSeatsLookup = errors.New("booked seats lookup failed")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
