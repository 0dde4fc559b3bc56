package entity

import (
	"fmt"
	"strings"
)

// ShowingKey identifies one screening: the unit at which seats are booked.
type ShowingKey struct {
	MovieID   string `json:"movie_id"`
	TheatreID string `json:"theatre_id"`
	ShowTime  string `json:"show_time"`
}

// Complete reports whether movie, theatre and time are all chosen.
func (k ShowingKey) Complete() bool {
	return strings.TrimSpace(k.MovieID) != "" &&
		strings.TrimSpace(k.TheatreID) != "" &&
		strings.TrimSpace(k.ShowTime) != ""
}

// String is the canonical form used for cache keys and advisory locks.
func (k ShowingKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.MovieID, k.TheatreID, k.ShowTime)
}
