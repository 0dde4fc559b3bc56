package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidShowingKey means movie, theatre or show time was not chosen.
	ErrInvalidShowingKey    = errors.New("showing key incomplete: movie, theatre and show time are required")
	ErrShowingKeyIncomplete = ErrInvalidShowingKey

	ErrEmptySelection   = errors.New("no seats selected")
	ErrUnknownSeat      = errors.New("unknown seat")
	ErrSeatAlreadyTaken = errors.New("seat already taken")

	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAvailabilityUnavailable means booked seats could not be determined.
	// Callers must treat it as "unknown", never as "nothing booked".
	ErrAvailabilityUnavailable = errors.New("seat availability unavailable")
	ErrStoreWriteFailed        = errors.New("booking store write failed")

	ErrMovieNotFound         = errors.New("movie not found")
	ErrMovieNotShowing       = errors.New("movie is not showing")
	ErrShowingNotFound       = errors.New("showing not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrBookingNotCancellable = errors.New("booking is already cancelled")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
)

// SelectionError rejects a seat selection. Reason is one of ErrEmptySelection,
// ErrUnknownSeat or ErrSeatAlreadyTaken; Seats names the offending seats.
type SelectionError struct {
	Reason error
	Seats  []string
}

func (e *SelectionError) Error() string {
	if len(e.Seats) == 0 {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason.Error(), strings.Join(e.Seats, ", "))
}

func (e *SelectionError) Unwrap() error {
	return e.Reason
}
