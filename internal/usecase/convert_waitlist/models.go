package convert_waitlist

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на конвертацию записи листа ожидания в бронирование
type Request struct {
	EntryID   int64            // ID записи листа ожидания
	UserID    int64            // ID клиента, инициирующего конвертацию
	Date      time.Time        // Дата бронирования (освободившийся слот)
	StartTime types.TimeString // Начало интервала
	EndTime   types.TimeString // Конец интервала (не входит)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID  int64            // ID созданного бронирования
	EntryID    int64            // ID сконвертированной записи
	CustomerID int64            // ID клиента
	StaffID    int64            // ID сотрудника
	BranchID   int64            // ID филиала
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Начало интервала
	EndTime    types.TimeString // Конец интервала
	Status     string           // Статус бронирования

	ServiceName string // Название услуги

	CreatedAt time.Time // Время создания
}

// toResponse конвертирует доменную модель в response
func toResponse(b *domain.Booking, entryID int64) *Response {
	return &Response{
		BookingID:   b.ID,
		EntryID:     entryID,
		CustomerID:  b.CustomerID,
		StaffID:     b.StaffID,
		BranchID:    b.BranchID,
		ServiceID:   b.ServiceID,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		ServiceName: b.ServiceName,
		CreatedAt:   b.CreatedAt,
	}
}
