package usecase

import (
	"context"
	"fmt"

	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"go.uber.org/zap"
)

// showing is a showing key resolved against the catalog.
type showing struct {
	key     entity.ShowingKey
	movie   *entity.Movie
	theatre *entity.Theatre
}

func (s *showing) layout() entity.SeatLayout {
	return s.theatre.Layout()
}

// showingReader is shared by the availability and booking services.
type showingReader struct {
	repo     *repository.Repository
	snapshot cache.SnapshotStore
	log      *zap.Logger
}

// resolve checks that the key names a scheduled showing. Catalog failures
// are reported as ErrAvailabilityUnavailable since the seat layout is then
// unknown.
func (r *showingReader) resolve(ctx context.Context, key entity.ShowingKey) (*showing, error) {
	if !key.Complete() {
		return nil, ErrInvalidShowingKey
	}

	movie, err := r.repo.Movie.FindByID(ctx, key.MovieID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityUnavailable, err)
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	showtime, err := r.repo.Showtime.FindByShowing(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityUnavailable, err)
	}
	if showtime == nil {
		return nil, ErrShowingNotFound
	}

	theatre, err := r.repo.Theatre.FindByID(ctx, key.TheatreID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityUnavailable, err)
	}
	if theatre == nil {
		return nil, ErrShowingNotFound
	}

	return &showing{key: key, movie: movie, theatre: theatre}, nil
}

// cachedSeats reads the snapshot. A failed read only loses the cache, the
// live scan still decides availability.
func (r *showingReader) cachedSeats(ctx context.Context, key entity.ShowingKey) []string {
	seats, err := r.snapshot.Seats(ctx, key)
	if err != nil {
		r.log.Warn("Snapshot read failed, using live bookings only",
			zap.Error(err),
			zap.String("showing", key.String()))
		return nil
	}
	return seats
}

// unavailable is the union of the snapshot and the live booking scan.
func (r *showingReader) unavailable(ctx context.Context, key entity.ShowingKey) ([]string, error) {
	if !key.Complete() {
		return nil, ErrInvalidShowingKey
	}

	booked, err := r.repo.Booking.FindBookedSeats(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityUnavailable, err)
	}

	return unionSeats(r.cachedSeats(ctx, key), booked), nil
}
