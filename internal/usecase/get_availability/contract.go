package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time, onlyActive bool) ([]*domain.Booking, error)
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetStaff(ctx context.Context, staffID int64) (*directoryservice.Staff, error)
	GetBranch(ctx context.Context, branchID int64) (*directoryservice.Branch, error)
	GetBranchStaff(ctx context.Context, branchID int64) ([]*directoryservice.Staff, error)
	GetService(ctx context.Context, serviceID int64) (*directoryservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
