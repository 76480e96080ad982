package cancel_waitlist_entry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

const (
	msgInvalidEntryID     = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись листа ожидания не найдена"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "запись не может быть отменена"
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

// Handle PATCH /api/v1/waitlist/{entryId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем entryId из URL
	vars := mux.Vars(r)
	entryIDStr := vars["entryId"]

	entryID, err := strconv.ParseInt(entryIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /waitlist/{id}/cancel - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	// Декодируем body
	var req models.WithdrawRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /waitlist/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Отзываем запись
	err = h.service.Withdraw(r.Context(), entryID, &req)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Access denied: entry_id=%d, user_id=%d",
				entryID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, waitlist.ErrInvalidTransition):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Cannot cancel: entry_id=%d", entryID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /waitlist/{id}/cancel - Failed to cancel entry: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /waitlist/{id}/cancel - Entry cancelled successfully: entry_id=%d, user_id=%d",
		entryID, req.UserID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
