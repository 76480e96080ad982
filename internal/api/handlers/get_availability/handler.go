package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

const (
	msgInvalidStaffID  = "некорректный ID сотрудника"
	msgInvalidBranchID = "некорректный ID филиала"
	msgMissingDate     = "параметр date обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStaffNotFound   = "сотрудник не найден"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleStaff GET /api/v1/staff/{staffId}/availability?date=YYYY-MM-DD
func (h *Handler) HandleStaff(w http.ResponseWriter, r *http.Request) {
	// Извлекаем staffId из URL
	vars := mux.Vars(r)
	staffIDStr := vars["staffId"]

	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date, ok := h.parseDate(w, r, "GET /staff/{staffId}/availability")
	if !ok {
		return
	}

	resp, err := h.useCase.ExecuteStaff(r.Context(), &getAvailability.StaffRequest{
		StaffID: staffID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{staffId}/availability - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("GET /staff/{staffId}/availability - Failed to get availability: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{staffId}/availability - Availability computed: staff_id=%d, intervals=%d",
		staffID, len(resp.Availability.FreeIntervals))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleBranch GET /api/v1/branches/{branchId}/availability?date=YYYY-MM-DD
func (h *Handler) HandleBranch(w http.ResponseWriter, r *http.Request) {
	// Извлекаем branchId из URL
	vars := mux.Vars(r)
	branchIDStr := vars["branchId"]

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{branchId}/availability - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	date, ok := h.parseDate(w, r, "GET /branches/{branchId}/availability")
	if !ok {
		return
	}

	resp, err := h.useCase.ExecuteBranch(r.Context(), &getAvailability.BranchRequest{
		BranchID: branchID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{branchId}/availability - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		default:
			h.logger.Error("GET /branches/{branchId}/availability - Failed to get availability: branch_id=%d, error=%v",
				branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{branchId}/availability - Availability computed: branch_id=%d, staff=%d",
		branchID, len(resp.Staff))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// parseDate извлекает обязательный query параметр date
func (h *Handler) parseDate(w http.ResponseWriter, r *http.Request, route string) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		h.logger.Warn("%s - Missing date parameter", route)
		handlers.RespondBadRequest(w, msgMissingDate)
		return time.Time{}, false
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return time.Time{}, false
	}

	return date, true
}
