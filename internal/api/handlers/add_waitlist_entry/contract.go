package add_waitlist_entry

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	Add(ctx context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
