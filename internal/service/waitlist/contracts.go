package waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	GetActiveByStaff(ctx context.Context, staffID int64) ([]*domain.WaitlistEntry, error)
	GetActiveByBranch(ctx context.Context, branchID int64) ([]*domain.WaitlistEntry, error)
	GetActiveByCustomerStaffAndDate(ctx context.Context, customerID, staffID int64, date time.Time) ([]*domain.WaitlistEntry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.WaitlistStatus) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	GetStatsByBranch(ctx context.Context, branchID int64) (*domain.WaitlistStats, error)
}

// TimeProvider отдаёт текущее время, абстракция для тестов
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
