package cancel_waitlist_entry

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	Withdraw(ctx context.Context, entryID int64, req *models.WithdrawRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
