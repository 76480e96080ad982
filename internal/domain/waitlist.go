package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WaitlistStatus статус записи листа ожидания
type WaitlistStatus string

const (
	WaitlistActive    WaitlistStatus = "active"
	WaitlistNotified  WaitlistStatus = "notified"
	WaitlistConverted WaitlistStatus = "converted"
	WaitlistExpired   WaitlistStatus = "expired"
	WaitlistCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry заявка клиента на слот, которого сейчас нет в расписании
type WaitlistEntry struct {
	ID         int64
	CustomerID int64
	StaffID    int64
	BranchID   int64
	ServiceID  int64

	PreferredDate  time.Time
	PreferredStart types.TimeString
	PreferredEnd   types.TimeString

	// Допуски гибкости: на сколько дней/часов клиент готов сдвинуться
	FlexibleDays  int
	FlexibleHours int

	Priority int // Выше число = выше приоритет
	Notes    *string
	Status   WaitlistStatus

	CreatedAt  time.Time
	NotifiedAt *time.Time
	ExpiresAt  *time.Time
}

// IsTerminal возвращает true, если статус терминальный
func (w *WaitlistEntry) IsTerminal() bool {
	return w.Status == WaitlistConverted ||
		w.Status == WaitlistExpired ||
		w.Status == WaitlistCancelled
}

// PreferredWindow возвращает предпочитаемый временной интервал
func (w *WaitlistEntry) PreferredWindow() TimeRange {
	return TimeRange{Start: w.PreferredStart, End: w.PreferredEnd}
}

// IsExpiredAt возвращает true, если срок действия записи истёк к моменту now
func (w *WaitlistEntry) IsExpiredAt(now time.Time) bool {
	return w.ExpiresAt != nil && !w.ExpiresAt.After(now)
}

// WaitlistStats статистика листа ожидания филиала по статусам
type WaitlistStats struct {
	BranchID       int64
	TotalActive    int64
	TotalNotified  int64
	TotalConverted int64
	TotalExpired   int64
	TotalCancelled int64
}
