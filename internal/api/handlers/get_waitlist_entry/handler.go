package get_waitlist_entry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
)

const (
	msgInvalidEntryID = "некорректный ID записи"
	msgNotFound       = "запись листа ожидания не найдена"
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

// Handle GET /api/v1/waitlist/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем entryId из URL
	vars := mux.Vars(r)
	entryIDStr := vars["entryId"]

	entryID, err := strconv.ParseInt(entryIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /waitlist/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	entry, err := h.service.GetByID(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("GET /waitlist/{id} - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /waitlist/{id} - Failed to get entry: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /waitlist/{id} - Entry retrieved successfully: entry_id=%d", entryID)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
