// Package queue carries booking events over RabbitMQ. Consumers use them to
// keep the availability snapshot of a showing in step with its bookings.
package queue

import (
	"movie-booking/internal/data/entity"
)

type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is published after a booking is stored or cancelled.
type BookingEvent struct {
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id"`
	Reference  string    `json:"reference"`
	UserID     string    `json:"user_id"`
	MovieID    string    `json:"movie_id"`
	TheatreID  string    `json:"theatre_id"`
	ShowTime   string    `json:"show_time"`
	Seats      []string  `json:"seats"`
	TotalPrice int       `json:"total_price"`
	Currency   string    `json:"currency"`
	OccurredAt string    `json:"occurred_at"`
}

func (e BookingEvent) Key() entity.ShowingKey {
	return entity.ShowingKey{MovieID: e.MovieID, TheatreID: e.TheatreID, ShowTime: e.ShowTime}
}
