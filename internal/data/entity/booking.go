package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Holding reports whether a booking in this status keeps its seats.
func (s BookingStatus) Holding() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	BaseNoDelete
	Reference  string        `db:"reference"`
	UserID     uuid.UUID     `db:"user_id"`
	UserEmail  string        `db:"user_email"`
	MovieID    string        `db:"movie_id"`
	MovieTitle string        `db:"movie_title"`
	PosterPath *string       `db:"poster_path"`
	TheatreID  string        `db:"theatre_id"`
	ShowTime   string        `db:"show_time"`
	Seats      []string      `db:"seats"`
	TotalPrice int           `db:"total_price"`
	Currency   string        `db:"currency"`
	Status     BookingStatus `db:"status"`
}

func (b *Booking) Key() ShowingKey {
	return ShowingKey{MovieID: b.MovieID, TheatreID: b.TheatreID, ShowTime: b.ShowTime}
}
