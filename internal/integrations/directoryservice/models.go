package directoryservice

import "time"

// Staff модель сотрудника из DirectoryService
type Staff struct {
	ID           int64        `json:"id"`
	BranchID     int64        `json:"branch_id"`
	FullName     string       `json:"full_name"`
	IsActive     bool         `json:"is_active"`
	WorkingHours WeekSchedule `json:"working_hours"`
}

// Branch модель филиала из DirectoryService
type Branch struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	IsActive     bool         `json:"is_active"`
	WorkingHours WeekSchedule `json:"working_hours"`
}

// Service модель услуги из DirectoryService
// Буферы подготовки и уборки учитываются при расчёте доступности
type Service struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	DurationMinutes      int    `json:"duration_minutes"`
	PrepBufferMinutes    int    `json:"prep_buffer_minutes"`
	CleanupBufferMinutes int    `json:"cleanup_buffer_minutes"`
}

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime *string `json:"close_time,omitempty"` // "18:00"
}

// WeekSchedule расписание работы по дням недели
// У каждого сотрудника может быть собственное расписание, отличное от филиала
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForDate возвращает расписание на день недели указанной даты
func (w WeekSchedule) ForDate(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
