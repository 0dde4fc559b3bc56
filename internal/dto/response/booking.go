package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	Reference  string               `json:"reference"`
	UserID     string               `json:"user_id"`
	UserEmail  string               `json:"user_email"`
	MovieID    string               `json:"movie_id"`
	MovieTitle string               `json:"movie_title"`
	PosterPath *string              `json:"poster_path,omitempty"`
	TheatreID  string               `json:"theatre_id"`
	ShowTime   string               `json:"show_time"`
	Seats      []string             `json:"seats"`
	TotalPrice int                  `json:"total_price"`
	Currency   string               `json:"currency"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

type SeatResponse struct {
	ID     string            `json:"id"`
	Row    string            `json:"row"`
	Column int               `json:"column"`
	Class  entity.SeatClass  `json:"class"`
	Price  int               `json:"price"`
	Status entity.SeatStatus `json:"status"`
}

type SeatMapResponse struct {
	entity.ShowingKey
	TheatreName string         `json:"theatre_name"`
	Rows        int            `json:"rows"`
	SeatsPerRow int            `json:"seats_per_row"`
	Currency    string         `json:"currency"`
	Seats       []SeatResponse `json:"seats"`
}

type UnavailableSeatsResponse struct {
	entity.ShowingKey
	Seats []string `json:"seats"`
}

type SelectionResponse struct {
	entity.ShowingKey
	Seats      []string `json:"seats"`
	TotalPrice int      `json:"total_price"`
	Currency   string   `json:"currency"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		Reference:  booking.Reference,
		UserID:     booking.UserID.String(),
		UserEmail:  booking.UserEmail,
		MovieID:    booking.MovieID,
		MovieTitle: booking.MovieTitle,
		PosterPath: booking.PosterPath,
		TheatreID:  booking.TheatreID,
		ShowTime:   booking.ShowTime,
		Seats:      booking.Seats,
		TotalPrice: booking.TotalPrice,
		Currency:   booking.Currency,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}
}
