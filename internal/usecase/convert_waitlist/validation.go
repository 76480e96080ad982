package convert_waitlist

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EntryID <= 0 {
		return fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return validateInterval(req.StartTime, req.EndTime)
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
