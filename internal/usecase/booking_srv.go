package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/queue"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Customer is the authenticated caller of a booking command.
type Customer struct {
	UserID uuid.UUID
	Email  string
}

type BookingService interface {
	// CommitBooking re-checks availability and stores a confirmed booking.
	// A user may hold any number of bookings.
	CommitBooking(ctx context.Context, customer Customer, req *request.SeatSelectionRequest) (*response.BookingResponse, error)

	// ListBookingsForUser returns the user's bookings, most recent first.
	ListBookingsForUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	GetBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	showings  *showingReader
	repo      *repository.Repository
	snapshot  cache.SnapshotStore
	publisher queue.Publisher
	pricing   PriceCalculator
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	snapshot cache.SnapshotStore,
	publisher queue.Publisher,
	pricing PriceCalculator,
	log *zap.Logger,
) BookingService {
	log = log.With(zap.String("service", "booking"))
	return &bookingService{
		showings:  &showingReader{repo: repo, snapshot: snapshot, log: log},
		repo:      repo,
		snapshot:  snapshot,
		publisher: publisher,
		pricing:   pricing,
		log:       log,
	}
}

func (s *bookingService) CommitBooking(ctx context.Context, customer Customer, req *request.SeatSelectionRequest) (*response.BookingResponse, error) {
	if customer.UserID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	key := req.Key()
	if !key.Complete() {
		return nil, ErrShowingKeyIncomplete
	}

	sh, err := s.showings.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if !sh.movie.Status.Bookable() {
		return nil, ErrMovieNotShowing
	}

	seats := normalizeSeats(req.Seats)
	layout := sh.layout()

	// empty and unknown seats do not depend on availability
	if err := ValidateSelection(layout, seats, nil); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     customer.UserID,
		UserEmail:  customer.Email,
		MovieID:    key.MovieID,
		MovieTitle: sh.movie.Title,
		PosterPath: sh.movie.PosterPath,
		TheatreID:  key.TheatreID,
		ShowTime:   key.ShowTime,
		Seats:      seats,
		TotalPrice: s.pricing.ComputeTotal(seats),
		Currency:   s.pricing.Currency(),
		Status:     entity.BookingStatusConfirmed,
	}
	booking.Reference = utils.GenerateBookingReference(booking.ID)

	// every hold lives in bookings, so the scan taken under the lock decides
	guard := func(booked []string) error {
		return ValidateSelection(layout, seats, booked)
	}

	// once the transaction starts it runs to the end even if the client goes away
	commitCtx := context.WithoutCancel(ctx)
	if err := s.repo.Booking.CreateExclusive(commitCtx, booking, guard); err != nil {
		return nil, s.commitError(commitCtx, key, seats, err)
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("user_id", customer.UserID.String()),
		zap.String("showing", key.String()),
		zap.Strings("seats", seats),
		zap.Int("total_price", booking.TotalPrice),
	)

	if err := s.snapshot.AddSeats(commitCtx, key, seats); err != nil {
		s.log.Warn("Failed to update snapshot", zap.Error(err), zap.String("showing", key.String()))
	}
	s.publish(commitCtx, queue.EventBookingConfirmed, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// commitError turns a storage failure into the booking error taxonomy.
func (s *bookingService) commitError(ctx context.Context, key entity.ShowingKey, seats []string, err error) error {
	var selErr *SelectionError
	switch {
	case errors.As(err, &selErr):
		s.log.Info("Booking rejected",
			zap.Error(err),
			zap.String("showing", key.String()))
		return selErr

	case errors.Is(err, repository.ErrSeatConflict):
		// lost a race on the claim index, name the seats that were taken
		conflicts := seats
		if booked, lookupErr := s.repo.Booking.FindBookedSeats(ctx, key); lookupErr == nil {
			if taken := intersectSeats(seats, booked); len(taken) > 0 {
				conflicts = taken
			}
		}
		s.log.Warn("Booking lost seat race",
			zap.String("showing", key.String()),
			zap.Strings("seats", conflicts))
		return &SelectionError{Reason: ErrSeatAlreadyTaken, Seats: conflicts}

	case errors.Is(err, repository.ErrBookedSeatsLookup):
		s.log.Error("Availability lookup failed during commit", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrAvailabilityUnavailable, err)

	default:
		s.log.Error("Failed to store booking", zap.Error(err), zap.String("showing", key.String()))
		return fmt.Errorf("%w: %w", ErrStoreWriteFailed, err)
	}
}

// releaseSnapshot drops the cached seats of a showing after a cancel. If the
// cache refuses the delete it is overwritten with the live scan instead.
func (s *bookingService) releaseSnapshot(ctx context.Context, key entity.ShowingKey) {
	err := s.snapshot.Invalidate(ctx, key)
	if err == nil {
		return
	}
	s.log.Warn("Failed to invalidate snapshot, rebuilding from bookings",
		zap.Error(err),
		zap.String("showing", key.String()))

	booked, err := s.repo.Booking.FindBookedSeats(ctx, key)
	if err != nil {
		s.log.Error("Failed to scan bookings for snapshot", zap.Error(err), zap.String("showing", key.String()))
		return
	}
	if err := s.snapshot.Replace(ctx, key, booked); err != nil {
		s.log.Error("Failed to rebuild snapshot, stale until TTL",
			zap.Error(err),
			zap.String("showing", key.String()))
	}
}

func (s *bookingService) publish(ctx context.Context, eventType queue.EventType, booking *entity.Booking) {
	event := queue.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID.String(),
		Reference:  booking.Reference,
		UserID:     booking.UserID.String(),
		MovieID:    booking.MovieID,
		TheatreID:  booking.TheatreID,
		ShowTime:   booking.ShowTime,
		Seats:      booking.Seats,
		TotalPrice: booking.TotalPrice,
		Currency:   booking.Currency,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", string(eventType)),
			zap.String("booking_id", event.BookingID))
	}
}

func (s *bookingService) ListBookingsForUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		data = append(data, response.BookingToResponse(booking))
	}

	return response.NewPaginatedResponse(data, max(req.Page, 1), limit, total), nil
}

// findOwned loads a booking and hides bookings of other users.
func (s *bookingService) findOwned(ctx context.Context, userID uuid.UUID, bookingID string) (*entity.Booking, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.Holding() {
		return nil, ErrBookingNotCancellable
	}

	cancelCtx := context.WithoutCancel(ctx)
	cancelled, err := s.repo.Booking.Cancel(cancelCtx, booking.ID)
	if err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("%w: %w", ErrStoreWriteFailed, err)
	}
	if cancelled == nil {
		// cancelled concurrently
		return nil, ErrBookingNotCancellable
	}

	s.releaseSnapshot(cancelCtx, cancelled.Key())
	s.publish(cancelCtx, queue.EventBookingCancelled, cancelled)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID.String()),
		zap.Strings("seats", cancelled.Seats))

	resp := response.BookingToResponse(cancelled)
	return &resp, nil
}
