package usecase

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"go.uber.org/zap"
)

// CatalogService is the read-only view of movies, theatres and showtimes.
type CatalogService interface {
	ListMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error)
	ListShowtimes(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error)
	ListTheatres(ctx context.Context) ([]response.TheatreResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	limit := req.Limit()
	offset := req.Offset()
	filter := entity.MovieFilter{
		Status: entity.MovieStatus(req.Status),
		Genre:  req.Genre,
	}

	movies, err := s.repo.Movie.FindAll(ctx, filter, offset, limit)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	data := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		data = append(data, response.MovieToResponse(movie))
	}

	return response.NewPaginatedResponse(data, max(req.Page, 1), limit, total), nil
}

func (s *catalogService) GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *catalogService) ListShowtimes(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get showtimes for %s: %w", movieID, err)
	}

	theatres, err := s.theatresByID(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]response.ShowtimeResponse, 0, len(showtimes))
	for _, st := range showtimes {
		theatre, ok := theatres[st.TheatreID]
		if !ok {
			s.log.Warn("Showtime references unknown theatre",
				zap.String("showtime_id", st.ID),
				zap.String("theatre_id", st.TheatreID))
			continue
		}
		resp = append(resp, response.ShowtimeResponse{
			ID:       st.ID,
			MovieID:  st.MovieID,
			Theatre:  response.TheatreToResponse(theatre),
			ShowTime: st.ShowTime,
		})
	}

	return resp, nil
}

func (s *catalogService) ListTheatres(ctx context.Context) ([]response.TheatreResponse, error) {
	theatres, err := s.repo.Theatre.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get theatres", zap.Error(err))
		return nil, fmt.Errorf("get theatres: %w", err)
	}

	resp := make([]response.TheatreResponse, 0, len(theatres))
	for _, theatre := range theatres {
		resp = append(resp, response.TheatreToResponse(theatre))
	}
	return resp, nil
}

func (s *catalogService) theatresByID(ctx context.Context) (map[string]*entity.Theatre, error) {
	theatres, err := s.repo.Theatre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get theatres: %w", err)
	}

	byID := make(map[string]*entity.Theatre, len(theatres))
	for _, theatre := range theatres {
		byID[theatre.ID] = theatre
	}
	return byID, nil
}
