package conflict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByStaffAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

func booking(id int64, start, end types.TimeString, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		StaffID:   42,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestDetector_Check_FreeSlot(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, "09:00", "10:00", domain.StatusBooked),
	}}
	detector := NewDetector(repo)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	err := detector.Check(context.Background(), 42, date, "10:00", "11:00", nil)
	assert.NoError(t, err)
}

func TestDetector_Check_Overlap(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, "09:00", "10:00", domain.StatusBooked),
	}}
	detector := NewDetector(repo)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	err := detector.Check(context.Background(), 42, date, "09:30", "10:30", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []int64{1}, conflictErr.OverlappingIDs)
	assert.Equal(t, int64(42), conflictErr.StaffID)
}

func TestDetector_Check_TouchingBoundariesDoNotConflict(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, "09:00", "10:00", domain.StatusBooked),
		booking(2, "11:00", "12:00", domain.StatusBooked),
	}}
	detector := NewDetector(repo)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	// Интервал точно между двумя существующими: границы не конфликтуют
	err := detector.Check(context.Background(), 42, date, "10:00", "11:00", nil)
	assert.NoError(t, err)
}

func TestDetector_Check_ReportsAllBlockers(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, "09:00", "10:00", domain.StatusBooked),
		booking(2, "10:30", "11:30", domain.StatusInProgress),
		booking(3, "14:00", "15:00", domain.StatusBooked),
	}}
	detector := NewDetector(repo)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	err := detector.Check(context.Background(), 42, date, "09:30", "11:00", nil)
	require.Error(t, err)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []int64{1, 2}, conflictErr.OverlappingIDs)
}

func TestDetector_Check_IgnoresInactiveBookings(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, "09:00", "10:00", domain.StatusCancelled),
		booking(2, "09:00", "10:00", domain.StatusNoShow),
	}}
	detector := NewDetector(repo)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	err := detector.Check(context.Background(), 42, date, "09:00", "10:00", nil)
	assert.NoError(t, err)
}

func TestDetector_Check_ExcludesBookingByID(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(7, "09:00", "10:00", domain.StatusBooked),
	}}
	detector := NewDetector(repo)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	// Перенос бронирования на пересекающийся интервал не конфликтует с самим собой
	err := detector.Check(context.Background(), 42, date, "09:30", "10:30", ptr.Ptr(int64(7)))
	assert.NoError(t, err)
}

func TestDetector_Check_InvalidInterval(t *testing.T) {
	detector := NewDetector(&fakeBookingRepo{})

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	err := detector.Check(context.Background(), 42, date, "10:00", "10:00", nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	err = detector.Check(context.Background(), 42, date, "11:00", "10:00", nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestDetector_Check_StorageError(t *testing.T) {
	repo := &fakeBookingRepo{err: errors.New("connection reset")}
	detector := NewDetector(repo)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	err := detector.Check(context.Background(), 42, date, "09:00", "10:00", nil)
	assert.ErrorIs(t, err, ErrStorage)
}
