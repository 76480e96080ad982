package convert_waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("convert_waitlist: waitlist entry not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("convert_waitlist: access denied")

	// ErrNotNotified возвращается, когда запись не находится в статусе notified
	// Конвертировать можно только запись, по которой клиент был уведомлён
	ErrNotNotified = errors.New("convert_waitlist: entry is not in notified status")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("convert_waitlist: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("convert_waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("convert_waitlist: internal error")
)
