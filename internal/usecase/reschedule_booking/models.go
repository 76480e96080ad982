package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64            // ID переносимого бронирования
	UserID    int64            // ID клиента, инициирующего перенос
	Date      time.Time        // Новая дата
	StartTime types.TimeString // Новое начало интервала
	EndTime   types.TimeString // Новый конец интервала (не входит)
}

// Response модель ответа с новым бронированием
// Старое бронирование отменено с причиной "rescheduled", его ID в CancelledBookingID
type Response struct {
	ID                 int64            // ID нового бронирования
	CancelledBookingID int64            // ID отменённого бронирования
	CustomerID         int64            // ID клиента
	StaffID            int64            // ID сотрудника
	BranchID           int64            // ID филиала
	ServiceID          int64            // ID услуги
	Date               time.Time        // Дата бронирования
	StartTime          types.TimeString // Начало интервала
	EndTime            types.TimeString // Конец интервала
	Status             string           // Статус бронирования

	ServiceName string  // Название услуги
	TotalAmount float64 // Стоимость услуги
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// toResponse конвертирует доменную модель в response
func toResponse(b *domain.Booking, cancelledID int64) *Response {
	return &Response{
		ID:                 b.ID,
		CancelledBookingID: cancelledID,
		CustomerID:         b.CustomerID,
		StaffID:            b.StaffID,
		BranchID:           b.BranchID,
		ServiceID:          b.ServiceID,
		Date:               b.Date,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		TotalAmount:        b.TotalAmount,
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
