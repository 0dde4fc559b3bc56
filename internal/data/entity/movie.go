package entity

import (
	"time"
)

// MovieStatus is the catalog lifecycle of a movie.
type MovieStatus string

const (
	MovieStatusNowShowing MovieStatus = "now_showing"
	MovieStatusComingSoon MovieStatus = "coming_soon"
)

func (s MovieStatus) Valid() bool {
	return s == MovieStatusNowShowing || s == MovieStatusComingSoon
}

// Bookable reports whether seats can be sold for a movie in this status.
func (s MovieStatus) Bookable() bool {
	return s == MovieStatusNowShowing
}

type Movie struct {
	ID                string      `db:"id"`
	Title             string      `db:"title"`
	Genres            []string    `db:"genres"`
	Rating            float64     `db:"rating"`
	Synopsis          string      `db:"synopsis"`
	DurationInMinutes int         `db:"duration_in_minutes"`
	Status            MovieStatus `db:"status"`
	PosterPath        *string     `db:"poster_path"`
	BackdropPath      *string     `db:"backdrop_path"`
	TrailerKey        *string     `db:"trailer_key"`
	CreatedAt         time.Time   `db:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at"`
}

// MovieFilter narrows ListMovies. Zero values mean "any".
type MovieFilter struct {
	Status MovieStatus
	Genre  string
}
