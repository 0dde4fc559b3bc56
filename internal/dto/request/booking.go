package request

import (
	"movie-booking/internal/data/entity"
)

// ShowingQuery is read from the query string of the seat map endpoints.
type ShowingQuery struct {
	MovieID   string `json:"movie_id"`
	TheatreID string `json:"theatre_id"`
	ShowTime  string `json:"show_time"`
}

func (q ShowingQuery) Key() entity.ShowingKey {
	return entity.ShowingKey{MovieID: q.MovieID, TheatreID: q.TheatreID, ShowTime: q.ShowTime}
}

// SeatSelectionRequest is the body of both validate and book. Empty or
// missing fields are left to the booking engine so it can answer with its
// own rejection reason.
type SeatSelectionRequest struct {
	MovieID   string   `json:"movie_id" validate:"max=100"`
	TheatreID string   `json:"theatre_id" validate:"max=100"`
	ShowTime  string   `json:"show_time" validate:"max=20"`
	Seats     []string `json:"seats" validate:"max=50,dive,max=4"`
}

func (r SeatSelectionRequest) Key() entity.ShowingKey {
	return entity.ShowingKey{MovieID: r.MovieID, TheatreID: r.TheatreID, ShowTime: r.ShowTime}
}
