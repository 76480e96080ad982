package get_staff_waitlist

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем staffId из URL
	vars := mux.Vars(r)
	staffIDStr := vars["staffId"]

	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/waitlist - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.GetStaffWaitlist(r.Context(), staffID)
	if err != nil {
		h.logger.Error("GET /staff/{staffId}/waitlist - Failed to get waitlist: staff_id=%d, error=%v",
			staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/{staffId}/waitlist - Waitlist retrieved successfully: staff_id=%d, count=%d",
		staffID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result.Entries)
}
