package get_branch_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgMissingDate     = "параметр date обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter   = "некорректные параметры фильтрации"
)

const dateLayout = "2006-01-02"

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

// Handle GET /api/v1/branches/{branchId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем branchId из URL
	vars := mux.Vars(r)
	branchIDStr := vars["branchId"]

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{branchId}/bookings - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	// Разбираем query параметры: date обязателен, остальные опциональны
	query := r.URL.Query()

	rawDate := query.Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /branches/{branchId}/bookings - Missing date parameter: branch_id=%d", branchID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		h.logger.Warn("GET /branches/{branchId}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = &status
	}

	includeInactive := query.Get("includeInactive") == "true"

	// Формируем запрос к сервису
	serviceReq := &models.GetBranchBookingsRequest{
		BranchID:        branchID,
		Date:            date,
		Status:          statusPtr,
		IncludeInactive: includeInactive,
	}

	// Получаем бронирования филиала
	result, err := h.service.GetBranchBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			h.logger.Warn("GET /branches/{branchId}/bookings - Invalid filter: branch_id=%d, error=%v",
				branchID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /branches/{branchId}/bookings - Failed to get bookings: branch_id=%d, error=%v",
			branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches/{branchId}/bookings - Bookings retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
