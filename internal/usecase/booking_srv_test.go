package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer() Customer {
	return Customer{UserID: uuid.New(), Email: "ana@example.com"}
}

func selection(key entity.ShowingKey, seats ...string) *request.SeatSelectionRequest {
	return &request.SeatSelectionRequest{
		MovieID:   key.MovieID,
		TheatreID: key.TheatreID,
		ShowTime:  key.ShowTime,
		Seats:     seats,
	}
}

func TestCommitBooking_VIPSeatsOnEmptyShowing(t *testing.T) {
	f := newFixture()
	customer := newCustomer()

	booking, err := f.booking().CommitBooking(context.Background(), customer, selection(showingA, "A1", "B2"))
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, 30, booking.TotalPrice)
	assert.Equal(t, "USD", booking.Currency)
	assert.Equal(t, []string{"A1", "B2"}, booking.Seats)
	assert.Equal(t, "Dune: Part Two", booking.MovieTitle)
	assert.Equal(t, customer.Email, booking.UserEmail)
	assert.Len(t, booking.Reference, 8)
	assert.Equal(t, 1, f.bookings.count())
}

func TestCommitBooking_TakenSeatNeverWrites(t *testing.T) {
	f := newFixture()
	f.seed(showingA, "C3")

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "C3"))
	requireSelectionError(t, err, ErrSeatAlreadyTaken, []string{"C3"})
	assert.Equal(t, 1, f.bookings.count())
	assert.Empty(t, f.publisher.events)
}

func TestCommitBooking_StaleSnapshotDoesNotBlock(t *testing.T) {
	f := newFixture()
	// cached as taken but no booking holds it
	f.snapshot.seats[showingA] = []string{"D4"}

	booking, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "D4"))
	require.NoError(t, err)
	assert.Equal(t, []string{"D4"}, booking.Seats)
	assert.Equal(t, 1, f.bookings.count())
}

func TestCommitBooking_EmptySelection(t *testing.T) {
	f := newFixture()

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA))
	requireSelectionError(t, err, ErrEmptySelection, nil)
	assert.Equal(t, 0, f.bookings.count())
}

func TestCommitBooking_UnknownSeat(t *testing.T) {
	f := newFixture()

	// City Plex has rows A-E with 8 seats each
	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingB, "A9", "F1"))
	requireSelectionError(t, err, ErrUnknownSeat, []string{"A9", "F1"})
}

func TestCommitBooking_AccumulatesPerUser(t *testing.T) {
	f := newFixture()
	svc := f.booking()
	customer := newCustomer()

	first, err := svc.CommitBooking(context.Background(), customer, selection(showingA, "E1"))
	require.NoError(t, err)
	second, err := svc.CommitBooking(context.Background(), customer, selection(showingB, "E2"))
	require.NoError(t, err)

	list, err := svc.ListBookingsForUser(context.Background(), customer.UserID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)

	require.Len(t, list.Data, 2)
	assert.Equal(t, second.ID, list.Data[0].ID)
	assert.Equal(t, first.ID, list.Data[1].ID)
	assert.Equal(t, int64(2), list.Pagination.Total)
	assert.Equal(t, entity.BookingStatusConfirmed, list.Data[1].Status)
}

func TestCommitBooking_RoundTrip(t *testing.T) {
	f := newFixture()
	svc := f.booking()
	customer := newCustomer()

	committed, err := svc.CommitBooking(context.Background(), customer, selection(showingA, "J10", "A3", "C5"))
	require.NoError(t, err)

	list, err := svc.ListBookingsForUser(context.Background(), customer.UserID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	got := list.Data[0]
	assert.ElementsMatch(t, []string{"J10", "A3", "C5"}, got.Seats)
	assert.Equal(t, showingA.MovieID, got.MovieID)
	assert.Equal(t, showingA.TheatreID, got.TheatreID)
	assert.Equal(t, showingA.ShowTime, got.ShowTime)
	assert.Equal(t, committed.TotalPrice, got.TotalPrice)
	assert.Equal(t, 35, got.TotalPrice)
}

func TestCommitBooking_MakesSeatsUnavailable(t *testing.T) {
	f := newFixture()

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "G7", "G8"))
	require.NoError(t, err)

	seats, err := f.availability().GetUnavailableSeats(context.Background(), showingA)
	require.NoError(t, err)
	assert.Equal(t, []string{"G7", "G8"}, seats)

	_, err = f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "G8", "G9"))
	requireSelectionError(t, err, ErrSeatAlreadyTaken, []string{"G8"})
}

func TestCommitBooking_UpdatesSnapshotAndPublishes(t *testing.T) {
	f := newFixture()

	booking, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "C1"))
	require.NoError(t, err)

	assert.Equal(t, []string{"C1"}, f.snapshot.seats[showingA])
	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, queue.EventBookingConfirmed, event.Type)
	assert.Equal(t, booking.ID, event.BookingID)
	assert.Equal(t, showingA, event.Key())
}

func TestCommitBooking_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "C1"))
	assert.NoError(t, err)
	assert.Equal(t, 1, f.bookings.count())
}

func TestCommitBooking_NormalizesSeats(t *testing.T) {
	f := newFixture()

	booking, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "c2", "C2", " d3 "))
	require.NoError(t, err)
	assert.Equal(t, []string{"C2", "D3"}, booking.Seats)
	assert.Equal(t, 20, booking.TotalPrice)
}

func TestCommitBooking_NotAuthenticated(t *testing.T) {
	f := newFixture()

	_, err := f.booking().CommitBooking(context.Background(), Customer{}, selection(showingA, "A1"))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, f.bookings.count())
}

func TestCommitBooking_IncompleteKey(t *testing.T) {
	f := newFixture()

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(),
		&request.SeatSelectionRequest{MovieID: "m1", TheatreID: "t1", Seats: []string{"A1"}})
	assert.ErrorIs(t, err, ErrShowingKeyIncomplete)
}

func TestCommitBooking_ComingSoonMovie(t *testing.T) {
	f := newFixture()

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(upcoming, "A1"))
	assert.ErrorIs(t, err, ErrMovieNotShowing)
}

func TestCommitBooking_UnscheduledShowing(t *testing.T) {
	f := newFixture()

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(),
		selection(entity.ShowingKey{MovieID: "m1", TheatreID: "t2", ShowTime: "20:30"}, "A1"))
	assert.ErrorIs(t, err, ErrShowingNotFound)
}

func TestCommitBooking_LostRaceReportsTakenSeats(t *testing.T) {
	f := newFixture()
	f.bookings.raceSeats = []string{"B2"}

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "B1", "B2"))
	requireSelectionError(t, err, ErrSeatAlreadyTaken, []string{"B2"})
	assert.Empty(t, f.publisher.events)
}

func TestCommitBooking_AvailabilityUnavailable(t *testing.T) {
	f := newFixture()
	f.bookings.lookupErr = errStoreDown

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "A1"))
	assert.ErrorIs(t, err, ErrAvailabilityUnavailable)
	assert.Equal(t, 0, f.bookings.count())
}

func TestCommitBooking_StoreWriteFailed(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = errStoreDown

	_, err := f.booking().CommitBooking(context.Background(), newCustomer(), selection(showingA, "A1"))
	assert.ErrorIs(t, err, ErrStoreWriteFailed)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestCommitBooking_SurvivesClientCancellation(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	svc := f.booking()

	cancel()
	_, err := svc.CommitBooking(ctx, newCustomer(), selection(showingA, "A1"))
	require.NoError(t, err)
	require.NotNil(t, f.bookings.commitCtx)
	assert.NoError(t, f.bookings.commitCtx.Err())
}

func TestListBookingsForUser_OnlyOwnBookings(t *testing.T) {
	f := newFixture()
	svc := f.booking()
	me, other := newCustomer(), newCustomer()

	_, err := svc.CommitBooking(context.Background(), me, selection(showingA, "A1"))
	require.NoError(t, err)
	_, err = svc.CommitBooking(context.Background(), other, selection(showingA, "A2"))
	require.NoError(t, err)

	list, err := svc.ListBookingsForUser(context.Background(), me.UserID, &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, []string{"A1"}, list.Data[0].Seats)
	assert.Equal(t, 1, list.Pagination.Page)
	assert.Equal(t, 10, list.Pagination.PerPage)
}

func TestGetBooking_HidesOtherUsersBookings(t *testing.T) {
	f := newFixture()
	svc := f.booking()
	owner := newCustomer()

	booking, err := svc.CommitBooking(context.Background(), owner, selection(showingA, "A1"))
	require.NoError(t, err)

	got, err := svc.GetBooking(context.Background(), owner.UserID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.Reference, got.Reference)

	_, err = svc.GetBooking(context.Background(), uuid.New(), booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetBooking(context.Background(), owner.UserID, "not-a-uuid")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBooking_ReleasesSeats(t *testing.T) {
	f := newFixture()
	svc := f.booking()
	owner := newCustomer()

	booking, err := svc.CommitBooking(context.Background(), owner, selection(showingA, "F1", "F2"))
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(context.Background(), owner.UserID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)

	assert.Contains(t, f.snapshot.invalidated, showingA)
	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, queue.EventBookingCancelled, f.publisher.events[1].Type)

	seats, err := f.availability().GetUnavailableSeats(context.Background(), showingA)
	require.NoError(t, err)
	assert.Empty(t, seats)

	// seats can be booked again
	_, err = svc.CommitBooking(context.Background(), newCustomer(), selection(showingA, "F1"))
	assert.NoError(t, err)
}

func TestCancelBooking_ReleasesSeatsWhenInvalidateFails(t *testing.T) {
	f := newFixture()
	f.snapshot.invalidateErr = errors.New("redis: connection refused")
	svc := f.booking()
	owner := newCustomer()

	booking, err := svc.CommitBooking(context.Background(), owner, selection(showingA, "F1"))
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), owner.UserID, booking.ID)
	require.NoError(t, err)

	seats, err := f.availability().GetUnavailableSeats(context.Background(), showingA)
	require.NoError(t, err)
	assert.Empty(t, seats)

	_, err = svc.CommitBooking(context.Background(), newCustomer(), selection(showingA, "F1"))
	assert.NoError(t, err)
}

func TestCancelBooking_Twice(t *testing.T) {
	f := newFixture()
	svc := f.booking()
	owner := newCustomer()

	booking, err := svc.CommitBooking(context.Background(), owner, selection(showingA, "F1"))
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), owner.UserID, booking.ID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), owner.UserID, booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotCancellable)
}

func TestCancelBooking_NotOwner(t *testing.T) {
	f := newFixture()
	svc := f.booking()

	booking, err := svc.CommitBooking(context.Background(), newCustomer(), selection(showingA, "F1"))
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), uuid.New(), booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
