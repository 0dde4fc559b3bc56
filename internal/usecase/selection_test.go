package usecase

import (
	"errors"
	"testing"

	"movie-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grandLayout = entity.SeatLayout{Rows: 10, SeatsPerRow: 10}

func requireSelectionError(t *testing.T, err error, reason error, seats []string) {
	t.Helper()
	var selErr *SelectionError
	require.True(t, errors.As(err, &selErr), "expected *SelectionError, got %v", err)
	assert.ErrorIs(t, err, reason)
	assert.Equal(t, seats, selErr.Seats)
}

func TestValidateSelection(t *testing.T) {
	tests := []struct {
		name        string
		candidate   []string
		unavailable []string
		reason      error
		seats       []string
	}{
		{name: "free seats", candidate: []string{"A1", "B2"}},
		{name: "empty selection", candidate: []string{}, reason: ErrEmptySelection},
		{name: "nil selection", candidate: nil, unavailable: []string{"A1"}, reason: ErrEmptySelection},
		{name: "row outside layout", candidate: []string{"K1"}, reason: ErrUnknownSeat, seats: []string{"K1"}},
		{name: "column outside layout", candidate: []string{"A1", "A11"}, reason: ErrUnknownSeat, seats: []string{"A11"}},
		{name: "malformed ids", candidate: []string{"A0", "1A", "a1"}, reason: ErrUnknownSeat, seats: []string{"A0", "1A", "a1"}},
		{name: "taken seat", candidate: []string{"C3"}, unavailable: []string{"C3"}, reason: ErrSeatAlreadyTaken, seats: []string{"C3"}},
		{name: "some taken", candidate: []string{"C2", "C3", "C4"}, unavailable: []string{"C4", "C3", "J9"}, reason: ErrSeatAlreadyTaken, seats: []string{"C3", "C4"}},
		{name: "unknown checked before taken", candidate: []string{"C3", "Z9"}, unavailable: []string{"C3"}, reason: ErrUnknownSeat, seats: []string{"Z9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelection(grandLayout, tt.candidate, tt.unavailable)
			if tt.reason == nil {
				assert.NoError(t, err)
				return
			}
			requireSelectionError(t, err, tt.reason, tt.seats)
		})
	}
}

func TestValidateSelection_OkMeansDisjoint(t *testing.T) {
	unavailable := []string{"A1", "B5", "J10"}
	candidates := [][]string{{"A2"}, {"B4", "B6"}, {"J9", "C1", "D7"}}

	for _, candidate := range candidates {
		require.NoError(t, ValidateSelection(grandLayout, candidate, unavailable))
		for _, seat := range candidate {
			assert.NotContains(t, unavailable, seat)
		}
	}
}

func TestSelectionError_Message(t *testing.T) {
	err := &SelectionError{Reason: ErrSeatAlreadyTaken, Seats: []string{"C3", "C4"}}
	assert.Equal(t, "seat already taken: C3, C4", err.Error())

	err = &SelectionError{Reason: ErrEmptySelection}
	assert.Equal(t, "no seats selected", err.Error())
}

func TestNormalizeSeats(t *testing.T) {
	assert.Equal(t, []string{"C3", "A1"}, normalizeSeats([]string{" c3", "A1", "C3", ""}))
	assert.Empty(t, normalizeSeats(nil))
}

func TestUnionSeats(t *testing.T) {
	assert.Equal(t, []string{"A1", "B2", "C3"}, unionSeats([]string{"C3", "A1"}, []string{"B2", "A1"}))
	assert.Equal(t, []string{}, unionSeats(nil, nil))
}
