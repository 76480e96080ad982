package match_waitlist

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidIDs         = "staffId и branchId обязательны"
	msgInvalidSlot        = "некорректный интервал слота"
)

type Handler struct {
	useCase MatchWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase MatchWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/match
// Запускает подбор кандидатов на освободившийся слот вручную -
// тот же механизм, что срабатывает после отмены или no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req MatchSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist/match - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.StaffID <= 0 || req.BranchID <= 0 {
		h.logger.Warn("POST /waitlist/match - Invalid IDs: staff_id=%d, branch_id=%d",
			req.StaffID, req.BranchID)
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	date, window, err := req.Parse()
	if err != nil {
		h.logger.Warn("POST /waitlist/match - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}
	if !window.IsValid() {
		h.logger.Warn("POST /waitlist/match - Invalid slot interval: [%s, %s)",
			window.Start, window.End)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	// Запускаем подбор
	if err := h.useCase.MatchAndNotify(r.Context(), req.StaffID, req.BranchID, date, window); err != nil {
		h.logger.Error("POST /waitlist/match - Matching failed: staff_id=%d, error=%v",
			req.StaffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /waitlist/match - Matching completed: staff_id=%d, date=%s",
		req.StaffID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, MatchSlotResponse{Status: "matched"})
}
