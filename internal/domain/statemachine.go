package domain

import "fmt"

// TransitionError возвращается при недопустимой смене статуса
// Содержит текущий и запрошенный статусы для диагностики
type TransitionError struct {
	Entity string
	From   string
	To     string
}

// Error реализует интерфейс error
func (e *TransitionError) Error() string {
	return fmt.Sprintf("domain: illegal %s transition from %q to %q", e.Entity, e.From, e.To)
}

// bookingTransitions таблица допустимых переходов статусов бронирования
// Отмена выполняемой услуги запрещена: из in_progress только завершение
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusBooked:     {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// waitlistTransitions таблица допустимых переходов статусов записи листа ожидания
// notified -> active разрешён только как откат несостоявшейся конвертации,
// notified -> cancelled - как отзыв клиентом после уведомления.
// Истекает только active: sweep не трогает уведомлённые записи
var waitlistTransitions = map[WaitlistStatus][]WaitlistStatus{
	WaitlistActive:    {WaitlistNotified, WaitlistExpired, WaitlistCancelled},
	WaitlistNotified:  {WaitlistConverted, WaitlistActive, WaitlistCancelled},
	WaitlistConverted: {},
	WaitlistExpired:   {},
	WaitlistCancelled: {},
}

// ValidateBookingTransition проверяет допустимость перехода статуса бронирования
func ValidateBookingTransition(from, to BookingStatus) error {
	allowed, ok := bookingTransitions[from]
	if !ok {
		return &TransitionError{Entity: "booking", From: string(from), To: string(to)}
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return &TransitionError{Entity: "booking", From: string(from), To: string(to)}
}

// ValidateWaitlistTransition проверяет допустимость перехода статуса записи листа ожидания
func ValidateWaitlistTransition(from, to WaitlistStatus) error {
	allowed, ok := waitlistTransitions[from]
	if !ok {
		return &TransitionError{Entity: "waitlist entry", From: string(from), To: string(to)}
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return &TransitionError{Entity: "waitlist entry", From: string(from), To: string(to)}
}
