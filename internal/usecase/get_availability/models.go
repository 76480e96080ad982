package get_availability

import "time"

// StaffRequest запрос доступности одного сотрудника на дату
type StaffRequest struct {
	StaffID int64
	Date    time.Time
}

// BranchRequest запрос доступности всех сотрудников филиала на дату
type BranchRequest struct {
	BranchID int64
	Date     time.Time
}

// FreeInterval свободный максимальный интервал рабочего дня
// Соседние свободные куски всегда слиты: два интервала не могут граничить
type FreeInterval struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:30"
}

// StaffAvailability доступность одного сотрудника на дату
type StaffAvailability struct {
	StaffID       int64          `json:"staffId"`
	StaffName     string         `json:"staffName"`
	IsWorking     bool           `json:"isWorking"`
	FreeIntervals []FreeInterval `json:"freeIntervals"`
}

// StaffResponse ответ с доступностью сотрудника
type StaffResponse struct {
	Date         string            `json:"date"` // "2025-10-15"
	Availability StaffAvailability `json:"availability"`
}

// BranchResponse ответ с доступностью всех сотрудников филиала
type BranchResponse struct {
	BranchID int64               `json:"branchId"`
	Date     string              `json:"date"`
	Staff    []StaffAvailability `json:"staff"`
}
