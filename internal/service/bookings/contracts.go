package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
	GetByBranchAndDate(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error)
	GetBySeriesID(ctx context.Context, seriesID string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, fromStatus, toStatus domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, fromStatus domain.BookingStatus, reason string) error
}

// WaitlistMatcher интерфейс подбора кандидатов из листа ожидания
// Вызывается при освобождении слота (отмена, no-show)
type WaitlistMatcher interface {
	MatchAndNotify(ctx context.Context, staffID, branchID int64, date time.Time, window domain.TimeRange) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
