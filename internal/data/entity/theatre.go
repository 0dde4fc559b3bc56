package entity

type Theatre struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Location    string `db:"location"`
	ScreenRows  int    `db:"screen_rows"`
	SeatsPerRow int    `db:"seats_per_row"`
}

// Layout returns the seat grid of the theatre's screen.
func (t *Theatre) Layout() SeatLayout {
	return SeatLayout{Rows: t.ScreenRows, SeatsPerRow: t.SeatsPerRow}
}
