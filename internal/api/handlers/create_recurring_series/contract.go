package create_recurring_series

import (
	"context"

	createRecurringSeries "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_series"
)

type CreateRecurringSeriesUseCase interface {
	Execute(ctx context.Context, req *createRecurringSeries.Request) (*createRecurringSeries.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
