package response

import (
	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Genres            []string           `json:"genres"`
	Rating            float64            `json:"rating"`
	Synopsis          string             `json:"synopsis"`
	DurationInMinutes int                `json:"duration_in_minutes"`
	Status            entity.MovieStatus `json:"status"`
	PosterPath        *string            `json:"poster_path,omitempty"`
	BackdropPath      *string            `json:"backdrop_path,omitempty"`
	TrailerKey        *string            `json:"trailer_key,omitempty"`
}

type TheatreResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	ScreenRows  int    `json:"screen_rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

type ShowtimeResponse struct {
	ID       string          `json:"id"`
	MovieID  string          `json:"movie_id"`
	Theatre  TheatreResponse `json:"theatre"`
	ShowTime string          `json:"show_time"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}

	return MovieResponse{
		ID:                movie.ID,
		Title:             movie.Title,
		Genres:            genres,
		Rating:            movie.Rating,
		Synopsis:          movie.Synopsis,
		DurationInMinutes: movie.DurationInMinutes,
		Status:            movie.Status,
		PosterPath:        movie.PosterPath,
		BackdropPath:      movie.BackdropPath,
		TrailerKey:        movie.TrailerKey,
	}
}

func TheatreToResponse(theatre *entity.Theatre) TheatreResponse {
	return TheatreResponse{
		ID:          theatre.ID,
		Name:        theatre.Name,
		Location:    theatre.Location,
		ScreenRows:  theatre.ScreenRows,
		SeatsPerRow: theatre.SeatsPerRow,
	}
}
