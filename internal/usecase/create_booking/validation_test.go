package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func validRequest() *Request {
	return &Request{
		CustomerID: 1,
		StaffID:    2,
		BranchID:   3,
		ServiceID:  4,
		Date:       time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "11:00",
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validateRequest(validRequest()))
	})

	t.Run("non-positive ids", func(t *testing.T) {
		for _, mutate := range []func(*Request){
			func(r *Request) { r.CustomerID = 0 },
			func(r *Request) { r.StaffID = -1 },
			func(r *Request) { r.BranchID = 0 },
			func(r *Request) { r.ServiceID = 0 },
		} {
			req := validRequest()
			mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		}
	})

	t.Run("zero length interval rejected", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "10:00"
		req.EndTime = "10:00"
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("inverted interval rejected", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "11:00"
		req.EndTime = "10:00"
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("malformed time rejected", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "25:00"
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2025, time.October, 10, 15, 30, 0, 0, time.UTC)

	// Сегодняшняя дата допустима, даже если время суток уже прошло
	assert.NoError(t, validateDate(time.Date(2025, time.October, 10, 0, 0, 0, 0, time.UTC), now))
	assert.NoError(t, validateDate(time.Date(2025, time.October, 11, 0, 0, 0, 0, time.UTC), now))

	assert.ErrorIs(t,
		validateDate(time.Date(2025, time.October, 9, 0, 0, 0, 0, time.UTC), now),
		ErrInvalidDate)
}

func TestValidateWithinWorkingHours(t *testing.T) {
	open := directoryservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("18:00"),
	}

	t.Run("inside hours", func(t *testing.T) {
		assert.NoError(t, validateWithinWorkingHours(open, "10:00", "11:00"))
	})

	t.Run("exactly at boundaries", func(t *testing.T) {
		assert.NoError(t, validateWithinWorkingHours(open, "09:00", "18:00"))
	})

	t.Run("starts before opening", func(t *testing.T) {
		assert.ErrorIs(t, validateWithinWorkingHours(open, "08:30", "10:00"), ErrOutsideWorkingHours)
	})

	t.Run("ends after closing", func(t *testing.T) {
		assert.ErrorIs(t, validateWithinWorkingHours(open, "17:30", "18:30"), ErrOutsideWorkingHours)
	})

	t.Run("day off", func(t *testing.T) {
		closed := directoryservice.DaySchedule{IsOpen: false}
		assert.ErrorIs(t, validateWithinWorkingHours(closed, "10:00", "11:00"), ErrStaffNotWorking)
	})

	t.Run("open without times treated as closed", func(t *testing.T) {
		broken := directoryservice.DaySchedule{IsOpen: true}
		assert.ErrorIs(t, validateWithinWorkingHours(broken, "10:00", "11:00"), ErrStaffNotWorking)
	})
}
