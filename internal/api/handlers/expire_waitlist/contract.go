package expire_waitlist

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	ExpireStale(ctx context.Context) (*models.ExpireResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
