package create_recurring_series

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		return err
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return validatePattern(req)
}

// validateInterval проверяет формат и положительную длину интервала
func validateInterval(start, end types.TimeString) error {
	if start.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if end.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: interval must have positive length", ErrInvalidInput)
	}

	return nil
}

// validatePattern проверяет шаблон повторения и его параметры
func validatePattern(req *Request) error {
	pattern := domain.RecurrencePattern(req.Pattern)

	if !domain.IsKnownRecurrencePattern(pattern) || pattern == domain.RecurrenceNone {
		return fmt.Errorf("%w: %q", ErrUnknownPattern, req.Pattern)
	}

	if pattern == domain.RecurrenceCustom {
		return validateCustomDates(req.CustomDates)
	}

	if req.Interval < domain.MinRecurrenceInterval || req.Interval > domain.MaxRecurrenceInterval {
		return fmt.Errorf("%w: interval must be between %d and %d",
			ErrInvalidInput, domain.MinRecurrenceInterval, domain.MaxRecurrenceInterval)
	}

	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	return nil
}

// validateCustomDates проверяет явный список дат
// Список должен быть непустым и строго возрастающим - это исключает дубли
func validateCustomDates(dates []time.Time) error {
	if len(dates) == 0 {
		return fmt.Errorf("%w: custom pattern requires at least one date", ErrInvalidInput)
	}

	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			return fmt.Errorf("%w: custom dates must be strictly ascending", ErrInvalidInput)
		}
	}

	return nil
}

// validateDate проверяет, что дата начала серии не в прошлом
func validateDate(startDate time.Time, now time.Time) error {
	dateOnly := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}
