package domain

import "time"

// RecurrencePattern шаблон шага между экземплярами повторяющейся серии
type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceCustom  RecurrencePattern = "custom"
)

// RecurrenceSpec спецификация повторяющейся серии бронирований
type RecurrenceSpec struct {
	Pattern  RecurrencePattern
	Interval int // Шаг в днях/неделях/месяцах в зависимости от Pattern

	// EndDate последняя допустимая дата экземпляра (включительно)
	// nil = серия ограничена только максимальным количеством экземпляров
	EndDate *time.Time

	// CustomDates явный список дат для Pattern = custom, минуя интервальную арифметику
	CustomDates []time.Time
}

// IsKnownRecurrencePattern возвращает true для известного шаблона повторения
func IsKnownRecurrencePattern(p RecurrencePattern) bool {
	switch p {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	default:
		return false
	}
}
