package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/queue"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testPricing = utils.PricingConfig{VIPPrice: 15, RegularPrice: 10, Currency: "USD"}

var errStoreDown = errors.New("connection refused")

// ---- catalog ----

type fakeMovieRepo struct {
	movies map[string]*entity.Movie
	err    error
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id string) (*entity.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.movies[id], nil
}

func (f *fakeMovieRepo) FindAll(_ context.Context, filter entity.MovieFilter, offset, limit int) ([]*entity.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.filtered(filter)
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (f *fakeMovieRepo) CountAll(_ context.Context, filter entity.MovieFilter) (int64, error) {
	return int64(len(f.filtered(filter))), f.err
}

func (f *fakeMovieRepo) filtered(filter entity.MovieFilter) []*entity.Movie {
	var out []*entity.Movie
	for _, m := range f.movies {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.Genre != "" && !slices.Contains(m.Genres, filter.Genre) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeMovieRepo) Upsert(_ context.Context, movie *entity.Movie) error {
	f.movies[movie.ID] = movie
	return nil
}

type fakeTheatreRepo struct {
	theatres map[string]*entity.Theatre
}

func (f *fakeTheatreRepo) FindByID(_ context.Context, id string) (*entity.Theatre, error) {
	return f.theatres[id], nil
}

func (f *fakeTheatreRepo) FindAll(_ context.Context) ([]*entity.Theatre, error) {
	var out []*entity.Theatre
	for _, t := range f.theatres {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeTheatreRepo) Upsert(_ context.Context, theatre *entity.Theatre) error {
	f.theatres[theatre.ID] = theatre
	return nil
}

type fakeShowtimeRepo struct {
	showtimes []*entity.Showtime
}

func (f *fakeShowtimeRepo) FindByShowing(_ context.Context, key entity.ShowingKey) (*entity.Showtime, error) {
	for _, st := range f.showtimes {
		if st.Key() == key {
			return st, nil
		}
	}
	return nil, nil
}

func (f *fakeShowtimeRepo) FindByMovieID(_ context.Context, movieID string) ([]*entity.Showtime, error) {
	var out []*entity.Showtime
	for _, st := range f.showtimes {
		if st.MovieID == movieID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeShowtimeRepo) Upsert(_ context.Context, showtime *entity.Showtime) error {
	f.showtimes = append(f.showtimes, showtime)
	return nil
}

// ---- bookings ----

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking

	lookupErr error
	createErr error
	// raceSeats are claimed by a concurrent booking right before the insert
	raceSeats []string
	commitCtx context.Context
}

func (f *fakeBookingRepo) held(key entity.ShowingKey) []string {
	var seats []string
	for _, b := range f.bookings {
		if b.Key() == key && b.Status.Holding() {
			seats = append(seats, b.Seats...)
		}
	}
	return seats
}

func (f *fakeBookingRepo) FindBookedSeats(_ context.Context, key entity.ShowingKey) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrBookedSeatsLookup, f.lookupErr)
	}
	seats := f.held(key)
	slices.Sort(seats)
	return slices.Compact(seats), nil
}

func (f *fakeBookingRepo) CreateExclusive(ctx context.Context, booking *entity.Booking, guard repository.SeatGuard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commitCtx = ctx

	if f.lookupErr != nil {
		return fmt.Errorf("%w: %v", repository.ErrBookedSeatsLookup, f.lookupErr)
	}
	if err := guard(f.held(booking.Key())); err != nil {
		return err
	}
	if f.createErr != nil {
		return f.createErr
	}
	if len(f.raceSeats) > 0 {
		f.bookings = append(f.bookings, &entity.Booking{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
			MovieID:      booking.MovieID,
			TheatreID:    booking.TheatreID,
			ShowTime:     booking.ShowTime,
			Seats:        f.raceSeats,
			Status:       entity.BookingStatusConfirmed,
		})
		f.raceSeats = nil
		return repository.ErrSeatConflict
	}

	stored := *booking
	f.bookings = append(f.bookings, &stored)
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) ownedBy(userID uuid.UUID) []*entity.Booking {
	var out []*entity.Booking
	for i := len(f.bookings) - 1; i >= 0; i-- {
		if f.bookings[i].UserID == userID {
			out = append(out, f.bookings[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owned := f.ownedBy(userID)
	if offset >= len(owned) {
		return nil, nil
	}
	return owned[offset:min(offset+limit, len(owned))], nil
}

func (f *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.ownedBy(userID))), nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id && b.Status.Holding() {
			b.Status = entity.BookingStatusCancelled
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

// ---- snapshot and events ----

type fakeSnapshot struct {
	mu            sync.Mutex
	seats         map[entity.ShowingKey][]string
	readErr       error
	invalidateErr error
	invalidated   []entity.ShowingKey
}

func newFakeSnapshot() *fakeSnapshot {
	return &fakeSnapshot{seats: make(map[entity.ShowingKey][]string)}
}

func (f *fakeSnapshot) Seats(_ context.Context, key entity.ShowingKey) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return slices.Clone(f.seats[key]), nil
}

func (f *fakeSnapshot) AddSeats(_ context.Context, key entity.ShowingKey, seats []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seats[key] = append(f.seats[key], seats...)
	return nil
}

func (f *fakeSnapshot) Replace(_ context.Context, key entity.ShowingKey, seats []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seats[key] = slices.Clone(seats)
	return nil
}

func (f *fakeSnapshot) Invalidate(_ context.Context, key entity.ShowingKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, key)
	if f.invalidateErr != nil {
		return f.invalidateErr
	}
	delete(f.seats, key)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.BookingEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event queue.BookingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

// ---- fixture ----

var (
	showingA = entity.ShowingKey{MovieID: "m1", TheatreID: "t1", ShowTime: "20:30"}
	showingB = entity.ShowingKey{MovieID: "m1", TheatreID: "t2", ShowTime: "10:00"}
	upcoming = entity.ShowingKey{MovieID: "m9", TheatreID: "t1", ShowTime: "20:30"}
)

type fixture struct {
	repo      *repository.Repository
	movies    *fakeMovieRepo
	bookings  *fakeBookingRepo
	snapshot  *fakeSnapshot
	publisher *fakePublisher
	pricing   PriceCalculator
	log       *zap.Logger
}

func newFixture() *fixture {
	movies := &fakeMovieRepo{movies: map[string]*entity.Movie{
		"m1": {ID: "m1", Title: "Dune: Part Two", Genres: []string{"Sci-Fi"}, Status: entity.MovieStatusNowShowing},
		"m9": {ID: "m9", Title: "Avatar 3", Genres: []string{"Sci-Fi"}, Status: entity.MovieStatusComingSoon},
	}}
	theatres := &fakeTheatreRepo{theatres: map[string]*entity.Theatre{
		"t1": {ID: "t1", Name: "Grand Cinema", Location: "Downtown", ScreenRows: 10, SeatsPerRow: 10},
		"t2": {ID: "t2", Name: "City Plex", Location: "Mall", ScreenRows: 5, SeatsPerRow: 8},
	}}
	showtimes := &fakeShowtimeRepo{showtimes: []*entity.Showtime{
		{ID: "s1", MovieID: "m1", TheatreID: "t1", ShowTime: "20:30"},
		{ID: "s2", MovieID: "m1", TheatreID: "t2", ShowTime: "10:00"},
		{ID: "s3", MovieID: "m9", TheatreID: "t1", ShowTime: "20:30"},
	}}
	bookings := &fakeBookingRepo{}

	return &fixture{
		repo: &repository.Repository{
			Movie:    movies,
			Theatre:  theatres,
			Showtime: showtimes,
			Booking:  bookings,
		},
		movies:    movies,
		bookings:  bookings,
		snapshot:  newFakeSnapshot(),
		publisher: &fakePublisher{},
		pricing:   NewPriceCalculator(testPricing),
		log:       zap.NewNop(),
	}
}

func (f *fixture) availability() AvailabilityService {
	return NewAvailabilityService(f.repo, f.snapshot, f.pricing, f.log)
}

func (f *fixture) booking() BookingService {
	return NewBookingService(f.repo, f.snapshot, f.publisher, f.pricing, f.log)
}

// seed stores a confirmed booking directly, bypassing the service.
func (f *fixture) seed(key entity.ShowingKey, seats ...string) *entity.Booking {
	b := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		UserID:       uuid.New(),
		MovieID:      key.MovieID,
		TheatreID:    key.TheatreID,
		ShowTime:     key.ShowTime,
		Seats:        seats,
		Status:       entity.BookingStatusConfirmed,
	}
	f.bookings.bookings = append(f.bookings.bookings, b)
	return b
}
