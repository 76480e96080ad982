package get_staff_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/staff/{staffId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем staffId из URL
	vars := mux.Vars(r)
	staffIDStr := vars["staffId"]

	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/bookings - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	// Разбираем query параметры (все опциональные)
	query := r.URL.Query()

	var startDate, endDate *time.Time
	if raw := query.Get("startDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.logger.Warn("GET /staff/{staffId}/bookings - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		startDate = &parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.logger.Warn("GET /staff/{staffId}/bookings - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		endDate = &parsed
	}

	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = &status
	}

	includeInactive := query.Get("includeInactive") == "true"

	// Формируем запрос к сервису
	serviceReq := &models.GetStaffBookingsRequest{
		StaffID:         staffID,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          statusPtr,
		IncludeInactive: includeInactive,
	}

	// Получаем бронирования сотрудника
	result, err := h.service.GetStaffBookings(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /staff/{staffId}/bookings - Failed to get bookings: staff_id=%d, error=%v",
			staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/{staffId}/bookings - Bookings retrieved successfully: staff_id=%d, count=%d",
		staffID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
