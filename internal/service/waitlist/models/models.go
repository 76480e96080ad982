package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// AddEntryRequest запрос на добавление записи в лист ожидания
type AddEntryRequest struct {
	CustomerID     int64   `json:"customerId"`
	StaffID        int64   `json:"staffId"`
	BranchID       int64   `json:"branchId"`
	ServiceID      int64   `json:"serviceId"`
	PreferredDate  string  `json:"preferredDate"`  // "2025-10-15"
	PreferredStart string  `json:"preferredStart"` // "10:00"
	PreferredEnd   string  `json:"preferredEnd"`   // "11:00"
	FlexibleDays   int     `json:"flexibleDays"`
	FlexibleHours  int     `json:"flexibleHours"`
	Priority       int     `json:"priority"`
	Notes          *string `json:"notes,omitempty"`
	ExpiresAt      *string `json:"expiresAt,omitempty"` // ISO 8601, по умолчанию +7 дней
}

// WithdrawRequest запрос на отзыв записи из листа ожидания
type WithdrawRequest struct {
	UserID int64 `json:"userId"`
}

// Response модели

// EntryResponse ответ с данными записи листа ожидания
type EntryResponse struct {
	ID             int64   `json:"id"`
	CustomerID     int64   `json:"customerId"`
	StaffID        int64   `json:"staffId"`
	BranchID       int64   `json:"branchId"`
	ServiceID      int64   `json:"serviceId"`
	PreferredDate  string  `json:"preferredDate"`
	PreferredStart string  `json:"preferredStart"`
	PreferredEnd   string  `json:"preferredEnd"`
	FlexibleDays   int     `json:"flexibleDays"`
	FlexibleHours  int     `json:"flexibleHours"`
	Priority       int     `json:"priority"`
	Notes          *string `json:"notes,omitempty"`
	Status         string  `json:"status"`

	CreatedAt  time.Time `json:"createdAt"`
	NotifiedAt *string   `json:"notifiedAt,omitempty"` // ISO 8601 format
	ExpiresAt  *string   `json:"expiresAt,omitempty"`  // ISO 8601 format
}

// EntryListResponse ответ со списком записей листа ожидания
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// StatsResponse статистика листа ожидания филиала по статусам
type StatsResponse struct {
	BranchID       int64 `json:"branchId"`
	TotalActive    int64 `json:"totalActive"`
	TotalNotified  int64 `json:"totalNotified"`
	TotalConverted int64 `json:"totalConverted"`
	TotalExpired   int64 `json:"totalExpired"`
	TotalCancelled int64 `json:"totalCancelled"`
}

// ExpireResponse результат пакетного истечения записей
type ExpireResponse struct {
	ExpiredCount int64 `json:"expiredCount"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:             e.ID,
		CustomerID:     e.CustomerID,
		StaffID:        e.StaffID,
		BranchID:       e.BranchID,
		ServiceID:      e.ServiceID,
		PreferredDate:  e.PreferredDate.Format(domain.DateFormat),
		PreferredStart: e.PreferredStart.String(),
		PreferredEnd:   e.PreferredEnd.String(),
		FlexibleDays:   e.FlexibleDays,
		FlexibleHours:  e.FlexibleHours,
		Priority:       e.Priority,
		Notes:          e.Notes,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
	}

	if e.NotifiedAt != nil {
		notifiedStr := e.NotifiedAt.Format(time.RFC3339)
		resp.NotifiedAt = &notifiedStr
	}
	if e.ExpiresAt != nil {
		expiresStr := e.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &expiresStr
	}

	return resp
}

// FromDomainEntryList конвертирует список domain моделей в DTO
func FromDomainEntryList(entries []*domain.WaitlistEntry) *EntryListResponse {
	if entries == nil {
		return &EntryListResponse{
			Entries: []EntryResponse{},
		}
	}

	resp := &EntryListResponse{
		Entries: make([]EntryResponse, len(entries)),
	}

	for i, entry := range entries {
		if entryResp := FromDomainEntry(entry); entryResp != nil {
			resp.Entries[i] = *entryResp
		}
	}

	return resp
}

// FromDomainStats конвертирует domain статистику в DTO
func FromDomainStats(s *domain.WaitlistStats) *StatsResponse {
	if s == nil {
		return nil
	}

	return &StatsResponse{
		BranchID:       s.BranchID,
		TotalActive:    s.TotalActive,
		TotalNotified:  s.TotalNotified,
		TotalConverted: s.TotalConverted,
		TotalExpired:   s.TotalExpired,
		TotalCancelled: s.TotalCancelled,
	}
}
