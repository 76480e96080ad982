package convert_waitlist_entry

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	convertWaitlist "github.com/m04kA/SMC-SchedulingService/internal/usecase/convert_waitlist"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ConvertWaitlistRequest HTTP request model
type ConvertWaitlistRequest struct {
	UserID    int64  `json:"userId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// ConvertedBookingResponse HTTP response model
type ConvertedBookingResponse struct {
	BookingID   int64  `json:"bookingId"`
	EntryID     int64  `json:"entryId"`
	CustomerID  int64  `json:"customerId"`
	StaffID     int64  `json:"staffId"`
	BranchID    int64  `json:"branchId"`
	ServiceID   int64  `json:"serviceId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	ServiceName string `json:"serviceName"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConvertWaitlistRequest) ToUseCaseRequest(entryID int64) (*convertWaitlist.Request, error) {
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

	return &convertWaitlist.Request{
		EntryID:   entryID,
		UserID:    r.UserID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *convertWaitlist.Response) *ConvertedBookingResponse {
	return &ConvertedBookingResponse{
		BookingID:   resp.BookingID,
		EntryID:     resp.EntryID,
		CustomerID:  resp.CustomerID,
		StaffID:     resp.StaffID,
		BranchID:    resp.BranchID,
		ServiceID:   resp.ServiceID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      resp.Status,
		ServiceName: resp.ServiceName,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
