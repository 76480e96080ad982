package conflict

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
// Внутри транзакции снапшот читается с блокировкой FOR UPDATE
type BookingRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time, onlyActive bool) ([]*domain.Booking, error)
}
