package get_availability

import (
	"context"

	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	ExecuteStaff(ctx context.Context, req *getAvailability.StaffRequest) (*getAvailability.StaffResponse, error)
	ExecuteBranch(ctx context.Context, req *getAvailability.BranchRequest) (*getAvailability.BranchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
