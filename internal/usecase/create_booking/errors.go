package create_booking

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("create_booking: branch not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrStaffInactive возвращается, когда сотрудник неактивен
	ErrStaffInactive = errors.New("create_booking: staff is inactive")

	// ErrStaffNotInBranch возвращается, когда сотрудник не работает в указанном филиале
	ErrStaffNotInBranch = errors.New("create_booking: staff does not work at this branch")

	// ErrStaffNotWorking возвращается, когда у сотрудника выходной в указанную дату
	ErrStaffNotWorking = errors.New("create_booking: staff is not working on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочие часы сотрудника
	ErrOutsideWorkingHours = errors.New("create_booking: interval is outside working hours")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
