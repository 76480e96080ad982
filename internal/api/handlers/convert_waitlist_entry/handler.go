package convert_waitlist_entry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	convertWaitlist "github.com/m04kA/SMC-SchedulingService/internal/usecase/convert_waitlist"
)

const (
	msgInvalidEntryID     = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись листа ожидания не найдена"
	msgForbidden          = "доступ запрещен"
	msgNotNotified        = "конвертировать можно только запись со статусом notified"
	msgConflict           = "выбранное время пересекается с существующим бронированием"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase ConvertWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase ConvertWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/{entryId}/convert
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем entryId из URL
	vars := mux.Vars(r)
	entryIDStr := vars["entryId"]

	entryID, err := strconv.ParseInt(entryIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/convert - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	// Декодируем body
	var req ConvertWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist/{id}/convert - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case
	ucReq, err := req.ToUseCaseRequest(entryID)
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/convert - Invalid request data: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	// Конвертируем запись в бронирование
	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, convertWaitlist.ErrEntryNotFound):
			h.logger.Warn("POST /waitlist/{id}/convert - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, convertWaitlist.ErrAccessDenied):
			h.logger.Warn("POST /waitlist/{id}/convert - Access denied: entry_id=%d, user_id=%d",
				entryID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, convertWaitlist.ErrNotNotified):
			h.logger.Warn("POST /waitlist/{id}/convert - Entry not notified: entry_id=%d", entryID)
			handlers.RespondBadRequest(w, msgNotNotified)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /waitlist/{id}/convert - Time conflict: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, convertWaitlist.ErrServiceNotFound):
			h.logger.Warn("POST /waitlist/{id}/convert - Service not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, convertWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist/{id}/convert - Invalid input: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /waitlist/{id}/convert - Failed to convert entry: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/{id}/convert - Entry converted successfully: entry_id=%d, booking_id=%d",
		entryID, resp.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
