package usecase

import (
	"context"
	"fmt"
	"slices"

	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	// GetUnavailableSeats returns the sorted ids of every seat that cannot be
	// booked for the showing.
	GetUnavailableSeats(ctx context.Context, key entity.ShowingKey) ([]string, error)
	GetSeatMap(ctx context.Context, key entity.ShowingKey) (*response.SeatMapResponse, error)
	ValidateSelection(ctx context.Context, req *request.SeatSelectionRequest) (*response.SelectionResponse, error)

	// RefreshSnapshot replaces the cached seats of a showing with a live scan.
	RefreshSnapshot(ctx context.Context, key entity.ShowingKey) error
}

type availabilityService struct {
	showings *showingReader
	repo     *repository.Repository
	snapshot cache.SnapshotStore
	pricing  PriceCalculator
	log      *zap.Logger
}

func NewAvailabilityService(
	repo *repository.Repository,
	snapshot cache.SnapshotStore,
	pricing PriceCalculator,
	log *zap.Logger,
) AvailabilityService {
	log = log.With(zap.String("service", "availability"))
	return &availabilityService{
		showings: &showingReader{repo: repo, snapshot: snapshot, log: log},
		repo:     repo,
		snapshot: snapshot,
		pricing:  pricing,
		log:      log,
	}
}

func (s *availabilityService) GetUnavailableSeats(ctx context.Context, key entity.ShowingKey) ([]string, error) {
	seats, err := s.showings.unavailable(ctx, key)
	if err != nil {
		s.log.Warn("Failed to resolve unavailable seats",
			zap.Error(err),
			zap.String("showing", key.String()))
		return nil, err
	}
	return seats, nil
}

func (s *availabilityService) GetSeatMap(ctx context.Context, key entity.ShowingKey) (*response.SeatMapResponse, error) {
	sh, err := s.showings.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	unavailable, err := s.GetUnavailableSeats(ctx, key)
	if err != nil {
		return nil, err
	}

	layout := sh.layout()
	seats := make([]response.SeatResponse, 0, layout.Rows*layout.SeatsPerRow)
	for _, seat := range layout.Seats() {
		status := entity.SeatStatusAvailable
		if _, found := slices.BinarySearch(unavailable, seat.ID()); found {
			status = entity.SeatStatusBooked
		}
		seats = append(seats, response.SeatResponse{
			ID:     seat.ID(),
			Row:    string(seat.Row),
			Column: seat.Column,
			Class:  seat.Class(),
			Price:  s.pricing.UnitPrice(seat.Class()),
			Status: status,
		})
	}

	return &response.SeatMapResponse{
		ShowingKey:  key,
		TheatreName: sh.theatre.Name,
		Rows:        layout.Rows,
		SeatsPerRow: layout.SeatsPerRow,
		Currency:    s.pricing.Currency(),
		Seats:       seats,
	}, nil
}

func (s *availabilityService) ValidateSelection(ctx context.Context, req *request.SeatSelectionRequest) (*response.SelectionResponse, error) {
	key := req.Key()
	sh, err := s.showings.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	unavailable, err := s.GetUnavailableSeats(ctx, key)
	if err != nil {
		return nil, err
	}

	seats := normalizeSeats(req.Seats)
	if err := ValidateSelection(sh.layout(), seats, unavailable); err != nil {
		return nil, err
	}

	return &response.SelectionResponse{
		ShowingKey: key,
		Seats:      seats,
		TotalPrice: s.pricing.ComputeTotal(seats),
		Currency:   s.pricing.Currency(),
	}, nil
}

func (s *availabilityService) RefreshSnapshot(ctx context.Context, key entity.ShowingKey) error {
	if !key.Complete() {
		return ErrInvalidShowingKey
	}

	booked, err := s.repo.Booking.FindBookedSeats(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAvailabilityUnavailable, err)
	}

	if err := s.snapshot.Replace(ctx, key, booked); err != nil {
		s.log.Warn("Failed to replace snapshot",
			zap.Error(err),
			zap.String("showing", key.String()))
		return err
	}

	return nil
}
