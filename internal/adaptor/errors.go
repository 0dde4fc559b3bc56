package adaptor

import (
	"errors"
	"net/http"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var selErr *usecase.SelectionError

	switch {
	case errors.As(err, &selErr):
		log.Info(operation+" rejected", zap.Error(err))
		details := map[string]any{"seats": selErr.Seats}
		if errors.Is(err, usecase.ErrSeatAlreadyTaken) {
			utils.ResponseConflict(w, selErr.Reason.Error(), details)
			return
		}
		utils.ResponseBadRequest(w, selErr.Reason.Error(), details)

	case errors.Is(err, usecase.ErrInvalidShowingKey),
		errors.Is(err, usecase.ErrMovieNotShowing):
		log.Warn(operation+" invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrMovieNotFound),
		errors.Is(err, usecase.ErrShowingNotFound),
		errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotAuthenticated),
		errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrAccountInactive):
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrBookingNotCancellable):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrAvailabilityUnavailable):
		log.Error(operation+" failed - availability unknown", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Seat availability is temporarily unavailable, please retry")

	case errors.Is(err, usecase.ErrStoreWriteFailed):
		log.Error(operation+" failed - store write", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Booking could not be saved, please retry")

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
