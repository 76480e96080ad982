package add_waitlist_entry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateEntry     = "у клиента уже есть активная запись на этого сотрудника и дату"
	msgInvalidInput       = "некорректные данные запроса"
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

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req models.AddEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Добавляем запись
	entry, err := h.service.Add(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrDuplicateEntry):
			h.logger.Warn("POST /waitlist - Duplicate entry: customer_id=%d, staff_id=%d, date=%s",
				req.CustomerID, req.StaffID, req.PreferredDate)
			handlers.RespondConflict(w, msgDuplicateEntry)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /waitlist - Failed to add entry: customer_id=%d, error=%v",
				req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Entry added successfully: entry_id=%d, customer_id=%d",
		entry.ID, entry.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
