package create_recurring_series

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createRecurringSeries "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_series"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStaffNotFound      = "сотрудник не найден"
	msgBranchNotFound     = "филиал не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffInactive      = "сотрудник неактивен"
	msgStaffNotInBranch   = "сотрудник не работает в указанном филиале"
	msgUnknownPattern     = "неизвестный шаблон повторения"
	msgInvalidDate        = "некорректная дата начала серии"
	msgEmptySeries        = "серия не содержит ни одной даты"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateRecurringSeriesUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringSeriesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req CreateRecurringSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case
	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request data: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	// Создаём серию
	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createRecurringSeries.ErrStaffNotFound):
			h.logger.Warn("POST /bookings/recurring - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createRecurringSeries.ErrBranchNotFound):
			h.logger.Warn("POST /bookings/recurring - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createRecurringSeries.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/recurring - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createRecurringSeries.ErrStaffInactive):
			h.logger.Warn("POST /bookings/recurring - Staff inactive: staff_id=%d", req.StaffID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, createRecurringSeries.ErrStaffNotInBranch):
			h.logger.Warn("POST /bookings/recurring - Staff not in branch: staff_id=%d, branch_id=%d",
				req.StaffID, req.BranchID)
			handlers.RespondBadRequest(w, msgStaffNotInBranch)

		case errors.Is(err, createRecurringSeries.ErrUnknownPattern):
			h.logger.Warn("POST /bookings/recurring - Unknown pattern: pattern=%s", req.Pattern)
			handlers.RespondBadRequest(w, msgUnknownPattern)

		case errors.Is(err, createRecurringSeries.ErrInvalidDate):
			h.logger.Warn("POST /bookings/recurring - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createRecurringSeries.ErrEmptySeries):
			h.logger.Warn("POST /bookings/recurring - Empty series: staff_id=%d", req.StaffID)
			handlers.RespondBadRequest(w, msgEmptySeries)

		case errors.Is(err, createRecurringSeries.ErrInvalidInput):
			h.logger.Warn("POST /bookings/recurring - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/recurring - Failed to create series: staff_id=%d, error=%v",
				req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/recurring - Series created successfully: series_id=%s, created=%d, skipped=%d",
		resp.SeriesID, resp.CreatedCount, resp.SkippedCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
