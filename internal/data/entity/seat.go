package entity

import (
	"fmt"
	"strconv"
)

type SeatClass string

const (
	SeatClassVIP     SeatClass = "VIP"
	SeatClassRegular SeatClass = "regular"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusBooked    SeatStatus = "booked"
)

// ClassForRow maps a row letter to its seat class: rows A and B are VIP.
func ClassForRow(row byte) SeatClass {
	if row == 'A' || row == 'B' {
		return SeatClassVIP
	}
	return SeatClassRegular
}

// Seat is one position on a screen, e.g. row 'C' column 7 is "C7".
type Seat struct {
	Row    byte
	Column int
}

func (s Seat) ID() string {
	return fmt.Sprintf("%c%d", s.Row, s.Column)
}

func (s Seat) Class() SeatClass {
	return ClassForRow(s.Row)
}

// ParseSeatID splits "C7" into row and column. It only checks the shape of
// the identifier; membership in a screen is checked by SeatLayout.Contains.
func ParseSeatID(id string) (Seat, error) {
	if len(id) < 2 {
		return Seat{}, fmt.Errorf("invalid seat id %q", id)
	}
	row := id[0]
	if row < 'A' || row > 'Z' {
		return Seat{}, fmt.Errorf("invalid seat row in %q", id)
	}
	col, err := strconv.Atoi(id[1:])
	if err != nil || col < 1 || id[1] == '0' {
		return Seat{}, fmt.Errorf("invalid seat column in %q", id)
	}
	return Seat{Row: row, Column: col}, nil
}

// SeatLayout is a rectangular screen: Rows rows lettered from 'A' and
// SeatsPerRow seats numbered from 1.
type SeatLayout struct {
	Rows        int
	SeatsPerRow int
}

func (l SeatLayout) Contains(id string) bool {
	seat, err := ParseSeatID(id)
	if err != nil {
		return false
	}
	return int(seat.Row-'A') < l.Rows && seat.Column <= l.SeatsPerRow
}

// Seats lists every seat row by row, front to back.
func (l SeatLayout) Seats() []Seat {
	seats := make([]Seat, 0, l.Rows*l.SeatsPerRow)
	for r := 0; r < l.Rows; r++ {
		for c := 1; c <= l.SeatsPerRow; c++ {
			seats = append(seats, Seat{Row: byte('A' + r), Column: c})
		}
	}
	return seats
}
