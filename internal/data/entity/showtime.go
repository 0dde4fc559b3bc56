package entity

type Showtime struct {
	ID        string `db:"id"`
	MovieID   string `db:"movie_id"`
	TheatreID string `db:"theatre_id"`
	ShowTime  string `db:"show_time"` // "20:30"
}

func (s *Showtime) Key() ShowingKey {
	return ShowingKey{MovieID: s.MovieID, TheatreID: s.TheatreID, ShowTime: s.ShowTime}
}
