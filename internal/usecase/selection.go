package usecase

import (
	"slices"
	"strings"

	"movie-booking/internal/data/entity"
)

// ValidateSelection checks a seat selection against a screen layout and the
// seats already unavailable for the showing. Checks run in order: the
// selection is non-empty, every seat exists in the layout, and no seat is
// unavailable. It returns nil or a *SelectionError.
func ValidateSelection(layout entity.SeatLayout, candidate []string, unavailable []string) error {
	if len(candidate) == 0 {
		return &SelectionError{Reason: ErrEmptySelection}
	}

	var unknown []string
	for _, seat := range candidate {
		if !layout.Contains(seat) {
			unknown = append(unknown, seat)
		}
	}
	if len(unknown) > 0 {
		return &SelectionError{Reason: ErrUnknownSeat, Seats: unknown}
	}

	taken := make(map[string]struct{}, len(unavailable))
	for _, seat := range unavailable {
		taken[seat] = struct{}{}
	}

	var conflicts []string
	for _, seat := range candidate {
		if _, ok := taken[seat]; ok {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) > 0 {
		return &SelectionError{Reason: ErrSeatAlreadyTaken, Seats: conflicts}
	}

	return nil
}

// normalizeSeats trims and upper-cases seat ids and drops repeats, keeping
// the first occurrence.
func normalizeSeats(seats []string) []string {
	out := make([]string, 0, len(seats))
	seen := make(map[string]struct{}, len(seats))
	for _, seat := range seats {
		seat = strings.ToUpper(strings.TrimSpace(seat))
		if seat == "" {
			continue
		}
		if _, dup := seen[seat]; dup {
			continue
		}
		seen[seat] = struct{}{}
		out = append(out, seat)
	}
	return out
}

// unionSeats merges seat lists into one sorted set.
func unionSeats(lists ...[]string) []string {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, seat := range list {
			set[seat] = struct{}{}
		}
	}

	seats := make([]string, 0, len(set))
	for seat := range set {
		seats = append(seats, seat)
	}
	slices.Sort(seats)
	return seats
}

func intersectSeats(a, b []string) []string {
	var out []string
	for _, seat := range a {
		if slices.Contains(b, seat) {
			out = append(out, seat)
		}
	}
	return out
}
