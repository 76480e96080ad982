package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrConflict сигнальная ошибка пересечения интервалов
// Детали (список блокирующих бронирований) доступны через errors.As с *ConflictError
var ErrConflict = errors.New("domain: time slot conflicts with existing bookings")

// ConflictError ошибка пересечения запрошенного интервала с активными бронированиями
// Содержит идентификаторы ВСЕХ блокирующих бронирований, не только первого
type ConflictError struct {
	StaffID        int64
	Date           time.Time
	Requested      TimeRange
	OverlappingIDs []int64
}

// Error реализует интерфейс error
func (e *ConflictError) Error() string {
	return fmt.Sprintf("domain: interval [%s, %s) for staff=%d on %s conflicts with bookings %v",
		e.Requested.Start, e.Requested.End, e.StaffID, e.Date.Format(DateFormat), e.OverlappingIDs)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrConflict)
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
