package match_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type MatchWaitlistUseCase interface {
	MatchAndNotify(ctx context.Context, staffID, branchID int64, date time.Time, window domain.TimeRange) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
