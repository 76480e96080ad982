package match_waitlist

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// MatchSlotRequest HTTP request model
type MatchSlotRequest struct {
	StaffID   int64  `json:"staffId"`
	BranchID  int64  `json:"branchId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// MatchSlotResponse HTTP response model
type MatchSlotResponse struct {
	Status string `json:"status"`
}

// Parse разбирает дату и интервал освободившегося слота
func (r *MatchSlotRequest) Parse() (time.Time, domain.TimeRange, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return time.Time{}, domain.TimeRange{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return time.Time{}, domain.TimeRange{}, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return time.Time{}, domain.TimeRange{}, err
	}

	return date, domain.TimeRange{Start: startTime, End: endTime}, nil
}
