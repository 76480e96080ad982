package create_recurring_series

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createRecurringSeries "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_series"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateRecurringSeriesRequest HTTP request model
type CreateRecurringSeriesRequest struct {
	CustomerID int64   `json:"customerId"`
	StaffID    int64   `json:"staffId"`
	BranchID   int64   `json:"branchId"`
	ServiceID  int64   `json:"serviceId"`
	StartDate  string  `json:"startDate"` // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	EndTime    string  `json:"endTime"`   // "11:00"
	Notes      *string `json:"notes,omitempty"`

	Pattern     string   `json:"pattern"`               // daily | weekly | monthly | custom
	Interval    int      `json:"interval,omitempty"`    // По умолчанию 1
	EndDate     *string  `json:"endDate,omitempty"`     // "2025-12-31", включительно
	CustomDates []string `json:"customDates,omitempty"` // Только для pattern = custom
}

// InstanceResult результат по одному экземпляру серии
type InstanceResult struct {
	Sequence  int    `json:"sequence"`
	Date      string `json:"date"`
	BookingID int64  `json:"bookingId,omitempty"`
	Skipped   bool   `json:"skipped"`
	Reason    string `json:"reason,omitempty"`
}

// SeriesResponse HTTP response model
type SeriesResponse struct {
	SeriesID     string           `json:"seriesId"`
	CreatedCount int              `json:"createdCount"`
	SkippedCount int              `json:"skippedCount"`
	Instances    []InstanceResult `json:"instances"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringSeriesRequest) ToUseCaseRequest() (*createRecurringSeries.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
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

	var endDate *time.Time
	if r.EndDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}

	customDates := make([]time.Time, 0, len(r.CustomDates))
	for _, raw := range r.CustomDates {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		customDates = append(customDates, parsed)
	}

	interval := r.Interval
	if interval == 0 {
		interval = 1
	}

	return &createRecurringSeries.Request{
		CustomerID:  r.CustomerID,
		StaffID:     r.StaffID,
		BranchID:    r.BranchID,
		ServiceID:   r.ServiceID,
		StartDate:   startDate,
		StartTime:   startTime,
		EndTime:     endTime,
		Notes:       r.Notes,
		Pattern:     r.Pattern,
		Interval:    interval,
		EndDate:     endDate,
		CustomDates: customDates,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurringSeries.Response) *SeriesResponse {
	instances := make([]InstanceResult, 0, len(resp.Instances))
	for _, inst := range resp.Instances {
		instances = append(instances, InstanceResult{
			Sequence:  inst.Sequence,
			Date:      inst.Date.Format(domain.DateFormat),
			BookingID: inst.BookingID,
			Skipped:   inst.Skipped,
			Reason:    inst.Reason,
		})
	}

	return &SeriesResponse{
		SeriesID:     resp.SeriesID,
		CreatedCount: resp.CreatedCount,
		SkippedCount: resp.SkippedCount,
		Instances:    instances,
	}
}
