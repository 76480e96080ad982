package get_series

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidSeriesID = "некорректный ID серии"
	msgNotFound        = "серия не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/series/{seriesId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем seriesId из URL
	vars := mux.Vars(r)
	seriesID := vars["seriesId"]

	if _, err := uuid.Parse(seriesID); err != nil {
		h.logger.Warn("GET /series/{seriesId} - Invalid series ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSeriesID)
		return
	}

	result, err := h.service.GetSeries(r.Context(), seriesID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSeriesNotFound):
			h.logger.Warn("GET /series/{seriesId} - Series not found: series_id=%s", seriesID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /series/{seriesId} - Failed to get series: series_id=%s, error=%v",
				seriesID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /series/{seriesId} - Series retrieved successfully: series_id=%s, count=%d",
		seriesID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
