package get_branch_waitlist

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

// Handle GET /api/v1/branches/{branchId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем branchId из URL
	vars := mux.Vars(r)
	branchIDStr := vars["branchId"]

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{branchId}/waitlist - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.service.GetBranchWaitlist(r.Context(), branchID)
	if err != nil {
		h.logger.Error("GET /branches/{branchId}/waitlist - Failed to get waitlist: branch_id=%d, error=%v",
			branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches/{branchId}/waitlist - Waitlist retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result.Entries)
}
