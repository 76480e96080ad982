package get_waitlist_stats

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
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

// Handle GET /api/v1/branches/{branchId}/waitlist/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем branchId из URL
	vars := mux.Vars(r)
	branchIDStr := vars["branchId"]

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{branchId}/waitlist/stats - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	stats, err := h.service.GetBranchStats(r.Context(), branchID)
	if err != nil {
		h.logger.Error("GET /branches/{branchId}/waitlist/stats - Failed to get stats: branch_id=%d, error=%v",
			branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches/{branchId}/waitlist/stats - Stats retrieved successfully: branch_id=%d",
		branchID)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
