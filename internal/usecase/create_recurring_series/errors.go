package create_recurring_series

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_recurring_series: staff not found")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("create_recurring_series: branch not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_recurring_series: service not found")

	// ErrStaffInactive возвращается, когда сотрудник неактивен
	ErrStaffInactive = errors.New("create_recurring_series: staff is inactive")

	// ErrStaffNotInBranch возвращается, когда сотрудник не работает в указанном филиале
	ErrStaffNotInBranch = errors.New("create_recurring_series: staff does not work at this branch")

	// ErrUnknownPattern возвращается при неизвестном шаблоне повторения
	ErrUnknownPattern = errors.New("create_recurring_series: unknown recurrence pattern")

	// ErrInvalidDate возвращается при некорректной дате начала серии
	ErrInvalidDate = errors.New("create_recurring_series: invalid start date")

	// ErrEmptySeries возвращается, когда экспансия не дала ни одной даты
	ErrEmptySeries = errors.New("create_recurring_series: expansion produced no instances")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_recurring_series: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_series: internal error")
)
