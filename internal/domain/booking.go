package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusBooked     BookingStatus = "booked"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Booking одно запланированное занятие времени сотрудника
type Booking struct {
	ID         int64
	CustomerID int64
	StaffID    int64
	BranchID   int64
	ServiceID  int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     BookingStatus

	// Денормализованные данные для истории
	ServiceName string
	TotalAmount float64 // Принадлежит биллингу, здесь непрозрачное значение
	Notes       *string

	// Метаданные повторяющейся серии
	IsRecurring        bool
	RecurrencePattern  RecurrencePattern
	RecurrenceInterval int
	RecurrenceEndDate  *time.Time
	ParentSeriesID     *string // UUID серии, общий для родителя и всех потомков
	RecurrenceSequence int     // Позиция в серии, 0 для первого экземпляра

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает время сотрудника
// Активные бронирования участвуют в инварианте непересечения интервалов
func (b *Booking) IsActive() bool {
	return b.Status == StatusBooked ||
		b.Status == StatusInProgress ||
		b.Status == StatusCompleted
}

// IsTerminal возвращает true, если статус терминальный
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelled ||
		b.Status == StatusNoShow
}

// Interval возвращает временной интервал бронирования
func (b *Booking) Interval() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// StaffBookingsFilter фильтр для получения бронирований сотрудника
type StaffBookingsFilter struct {
	StaffID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show бронирования
}

// BranchBookingsFilter фильтр для получения бронирований филиала за дату
type BranchBookingsFilter struct {
	BranchID        int64          // Обязательный параметр
	Date            time.Time      // Обязательный параметр
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show бронирования
}

// ActiveStatuses список статусов, занимающих время сотрудника
// Используется при проверке конфликтов и расчёте доступности
var ActiveStatuses = []BookingStatus{
	StatusBooked,
	StatusInProgress,
	StatusCompleted,
}

// InactiveStatuses список статусов, не занимающих время сотрудника
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
