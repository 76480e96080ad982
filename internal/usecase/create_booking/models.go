package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	StaffID    int64            // ID сотрудника
	BranchID   int64            // ID филиала
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Начало интервала, например "10:00"
	EndTime    types.TimeString // Конец интервала (не входит), например "11:00"
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64            // ID созданного бронирования
	CustomerID int64            // ID клиента
	StaffID    int64            // ID сотрудника
	BranchID   int64            // ID филиала
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Начало интервала
	EndTime    types.TimeString // Конец интервала
	Status     string           // Статус бронирования

	// Денормализованные данные
	ServiceName string  // Название услуги
	TotalAmount float64 // Стоимость услуги
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// toResponse конвертирует доменную модель в response
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		StaffID:     b.StaffID,
		BranchID:    b.BranchID,
		ServiceID:   b.ServiceID,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		ServiceName: b.ServiceName,
		TotalAmount: b.TotalAmount,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
