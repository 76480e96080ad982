package match_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notify"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	GetActiveByStaff(ctx context.Context, staffID int64) ([]*domain.WaitlistEntry, error)
	MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error
}

// NotificationPublisher интерфейс публикации событий планировщика
type NotificationPublisher interface {
	PublishSlotFreed(ctx context.Context, event notify.SlotFreedEvent) error
	PublishWaitlistMatched(ctx context.Context, event notify.WaitlistMatchedEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
