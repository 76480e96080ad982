package conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrInvalidInterval возвращается для некорректного интервала (start >= end)
	ErrInvalidInterval = errors.New("conflict: invalid interval, start must be before end")

	// ErrStorage возвращается при ошибке чтения снапшота бронирований
	ErrStorage = errors.New("conflict: failed to load bookings snapshot")
)

// Detector проверяет легальность интервала против активных бронирований сотрудника
// Не имеет побочных эффектов: читает снапшот и возвращает решение
type Detector struct {
	bookingRepo BookingRepository
}

// NewDetector создает новый детектор конфликтов
func NewDetector(bookingRepo BookingRepository) *Detector {
	return &Detector{bookingRepo: bookingRepo}
}

// Check проверяет интервал [start, end) на пересечение с активными бронированиями
// сотрудника staffID на дату date. excludeBookingID исключает бронирование из проверки
// (используется при переносе того же бронирования).
//
// Возвращает nil, если слот свободен, либо *domain.ConflictError со списком ВСЕХ
// блокирующих бронирований.
//
// Для предотвращения гонки "проверили - записали" вызов должен выполняться в той же
// сериализуемой транзакции, что и последующая запись: внутри транзакции снапшот
// читается с FOR UPDATE.
func (d *Detector) Check(
	ctx context.Context,
	staffID int64,
	date time.Time,
	start, end types.TimeString,
	excludeBookingID *int64,
) error {
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval, start, end)
	}

	bookings, err := d.bookingRepo.GetByStaffAndDate(ctx, staffID, date, true)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	overlapping := Overlapping(bookings, domain.TimeRange{Start: start, End: end}, excludeBookingID)
	if len(overlapping) == 0 {
		return nil
	}

	return &domain.ConflictError{
		StaffID:        staffID,
		Date:           date,
		Requested:      domain.TimeRange{Start: start, End: end},
		OverlappingIDs: overlapping,
	}
}

// Overlapping возвращает идентификаторы активных бронирований, пересекающихся
// с запрошенным интервалом. Чистая функция над снапшотом.
func Overlapping(bookings []*domain.Booking, requested domain.TimeRange, excludeBookingID *int64) []int64 {
	ids := make([]int64, 0)

	for _, booking := range bookings {
		if excludeBookingID != nil && booking.ID == *excludeBookingID {
			continue
		}
		// Отменённые и no-show бронирования не занимают время
		if !booking.IsActive() {
			continue
		}
		if booking.Interval().Overlaps(requested) {
			ids = append(ids, booking.ID)
		}
	}

	return ids
}
