package usecase

import (
	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/queue"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Catalog      CatalogService
	Availability AvailabilityService
	Booking      BookingService
}

func NewService(
	repo *repository.Repository,
	snapshot cache.SnapshotStore,
	publisher queue.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	pricing := NewPriceCalculator(config.Pricing)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.User, log),
		Catalog:      NewCatalogService(repo, log),
		Availability: NewAvailabilityService(repo, snapshot, pricing, log),
		Booking:      NewBookingService(repo, snapshot, publisher, pricing, log),
	}
}
