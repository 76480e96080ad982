package expire_waitlist

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
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

// Handle POST /api/v1/waitlist/expire
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ExpireStale(r.Context())
	if err != nil {
		h.logger.Error("POST /waitlist/expire - Failed to expire entries: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /waitlist/expire - Stale entries expired: count=%d", result.ExpiredCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
