package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type ShowingHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewShowingHandler(service usecase.AvailabilityService, log *zap.Logger) *ShowingHandler {
	return &ShowingHandler{
		service: service,
		log:     log.With(zap.String("handler", "showing")),
	}
}

func showingQuery(r *http.Request) request.ShowingQuery {
	query := r.URL.Query()
	return request.ShowingQuery{
		MovieID:   query.Get("movie_id"),
		TheatreID: query.Get("theatre_id"),
		ShowTime:  query.Get("show_time"),
	}
}

// GetSeatMap handles GET /api/showings/seats?movie_id=&theatre_id=&show_time=
func (h *ShowingHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	seatMap, err := h.service.GetSeatMap(r.Context(), showingQuery(r).Key())
	if err != nil {
		handleServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}

// GetUnavailableSeats handles GET /api/showings/unavailable?movie_id=&theatre_id=&show_time=
func (h *ShowingHandler) GetUnavailableSeats(w http.ResponseWriter, r *http.Request) {
	key := showingQuery(r).Key()

	seats, err := h.service.GetUnavailableSeats(r.Context(), key)
	if err != nil {
		handleServiceError(w, h.log, err, "get unavailable seats")
		return
	}

	utils.ResponseSuccess(w, "success", response.UnavailableSeatsResponse{
		ShowingKey: key,
		Seats:      seats,
	})
}

// ValidateSelection handles POST /api/showings/validate
func (h *ShowingHandler) ValidateSelection(w http.ResponseWriter, r *http.Request) {
	var req request.SeatSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.ValidateSelection(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "validate selection")
		return
	}

	utils.ResponseSuccess(w, "Seats available", result)
}
