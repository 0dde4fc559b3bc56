package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog configures the read-only catalog and seat availability routes
func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	showingHandler *adaptor.ShowingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies?status=now_showing&genre=Drama&page=1&per_page=10
	r.Get("/api/movies", catalogHandler.GetMovies)
	r.Get("/api/movies/{id}", catalogHandler.GetMovieByID)
	r.Get("/api/movies/{id}/showtimes", catalogHandler.GetShowtimes)
	r.Get("/api/theatres", catalogHandler.GetTheatres)

	// Seat availability, keyed by ?movie_id=&theatre_id=&show_time=
	r.Route("/api/showings", func(r chi.Router) {
		r.Get("/seats", showingHandler.GetSeatMap)
		r.Get("/unavailable", showingHandler.GetUnavailableSeats)
		r.Post("/validate", showingHandler.ValidateSelection)
	})
}
