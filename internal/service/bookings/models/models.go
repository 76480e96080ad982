package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetStaffBookingsRequest запрос на получение бронирований сотрудника
type GetStaffBookingsRequest struct {
	StaffID         int64      `json:"staffId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStaffBookingsRequest) ToDomainFilter() (domain.StaffBookingsFilter, error) {
	filter := domain.StaffBookingsFilter{
		StaffID:         r.StaffID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetBranchBookingsRequest запрос на получение бронирований филиала за дату
type GetBranchBookingsRequest struct {
	BranchID        int64     `json:"branchId"`
	Date            time.Time `json:"date"`
	Status          *string   `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отменённые и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchBookingsRequest) ToDomainFilter() (domain.BranchBookingsFilter, error) {
	filter := domain.BranchBookingsFilter{
		BranchID:        r.BranchID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	StaffID    int64  `json:"staffId"`
	BranchID   int64  `json:"branchId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "11:00"
	Status     string `json:"status"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	TotalAmount float64 `json:"totalAmount"`
	Notes       *string `json:"notes,omitempty"`

	// Метаданные повторяющейся серии
	IsRecurring        bool    `json:"isRecurring"`
	RecurrencePattern  string  `json:"recurrencePattern,omitempty"`
	RecurrenceInterval int     `json:"recurrenceInterval,omitempty"`
	RecurrenceEndDate  *string `json:"recurrenceEndDate,omitempty"`
	ParentSeriesID     *string `json:"parentSeriesId,omitempty"`
	RecurrenceSequence int     `json:"recurrenceSequence"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		StaffID:            b.StaffID,
		BranchID:           b.BranchID,
		ServiceID:          b.ServiceID,
		Date:               b.Date.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		TotalAmount:        b.TotalAmount,
		Notes:              b.Notes,
		IsRecurring:        b.IsRecurring,
		RecurrencePattern:  string(b.RecurrencePattern),
		RecurrenceInterval: b.RecurrenceInterval,
		ParentSeriesID:     b.ParentSeriesID,
		RecurrenceSequence: b.RecurrenceSequence,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.RecurrenceEndDate != nil {
		endDateStr := b.RecurrenceEndDate.Format(domain.DateFormat)
		resp.RecurrenceEndDate = &endDateStr
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusBooked,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
