package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	UserID    int64  `json:"userId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	CancelledBookingID int64   `json:"cancelledBookingId"`
	CustomerID         int64   `json:"customerId"`
	StaffID            int64   `json:"staffId"`
	BranchID           int64   `json:"branchId"`
	ServiceID          int64   `json:"serviceId"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	Status             string  `json:"status"`
	ServiceName        string  `json:"serviceName"`
	TotalAmount        float64 `json:"totalAmount"`
	Notes              *string `json:"notes,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    r.UserID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		CancelledBookingID: resp.CancelledBookingID,
		CustomerID:         resp.CustomerID,
		StaffID:            resp.StaffID,
		BranchID:           resp.BranchID,
		ServiceID:          resp.ServiceID,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		EndTime:            resp.EndTime.String(),
		Status:             resp.Status,
		ServiceName:        resp.ServiceName,
		TotalAmount:        resp.TotalAmount,
		Notes:              resp.Notes,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
