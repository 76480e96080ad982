package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	byID      map[int64]*domain.Booking
	bySeries  map[string][]*domain.Booking
	listed    []*domain.Booking
	statuses  map[int64]domain.BookingStatus
	cancelled map[int64]string
	statusErr error
	cancelErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:      make(map[int64]*domain.Booking),
		bySeries:  make(map[string][]*domain.Booking),
		statuses:  make(map[int64]domain.BookingStatus),
		cancelled: make(map[int64]string),
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.byID[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) GetByStaffWithFilter(context.Context, domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return f.listed, nil
}

func (f *fakeRepo) GetByBranchAndDate(context.Context, domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	return f.listed, nil
}

func (f *fakeRepo) GetBySeriesID(_ context.Context, seriesID string) ([]*domain.Booking, error) {
	return f.bySeries[seriesID], nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, _, toStatus domain.BookingStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statuses[id] = toStatus
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, _ domain.BookingStatus, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled[id] = reason
	return nil
}

// fakeMatcher сигнализирует о фоновом вызове через канал
type fakeMatcher struct {
	called chan struct{}
}

func newFakeMatcher() *fakeMatcher {
	return &fakeMatcher{called: make(chan struct{}, 1)}
}

func (f *fakeMatcher) MatchAndNotify(context.Context, int64, int64, time.Time, domain.TimeRange) error {
	f.called <- struct{}{}
	return nil
}

func (f *fakeMatcher) waitCalled(t *testing.T) {
	t.Helper()
	select {
	case <-f.called:
	case <-time.After(2 * time.Second):
		t.Fatal("matcher was not invoked")
	}
}

func mustTime(t *testing.T, value string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return ts
}

func storedBooking(t *testing.T, id int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:         id,
		CustomerID: 10,
		StaffID:    7,
		BranchID:   3,
		ServiceID:  5,
		Date:       time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		StartTime:  mustTime(t, "09:00"),
		EndTime:    mustTime(t, "10:00"),
		Status:     status,
	}
}

func TestServiceGetByID(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
	svc := NewService(repo, nil, nopLogger{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "09:00", resp.StartTime)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99)
		require.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestServiceUpdateStatus(t *testing.T) {
	t.Run("booked to in_progress", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		svc := NewService(repo, nil, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 10,
			Status: "in_progress",
		})
		require.NoError(t, err)
		assert.Equal(t, "in_progress", resp.Status)
		assert.Equal(t, domain.StatusInProgress, repo.statuses[1])
	})

	t.Run("completed booking is terminal", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusCompleted)
		svc := NewService(repo, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 10,
			Status: "in_progress",
		})
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, repo.statuses)
	})

	t.Run("cancellation must use cancel endpoint", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		svc := NewService(repo, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 10,
			Status: "cancelled",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		svc := NewService(repo, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 10,
			Status: "paused",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("concurrent transition loses the race", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		repo.statusErr = bookingRepo.ErrStatusConflict
		svc := NewService(repo, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 10,
			Status: "in_progress",
		})
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("no_show frees the slot for matching", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		matcher := newFakeMatcher()
		svc := NewService(repo, matcher, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 10,
			Status: "no_show",
		})
		require.NoError(t, err)
		matcher.waitCalled(t)
	})
}

func TestServiceCancel(t *testing.T) {
	t.Run("owner cancels booked", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		matcher := newFakeMatcher()
		svc := NewService(repo, matcher, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:             10,
			CancellationReason: "планы изменились",
		})
		require.NoError(t, err)
		assert.Equal(t, "планы изменились", repo.cancelled[1])
		matcher.waitCalled(t)
	})

	t.Run("foreign booking", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		svc := NewService(repo, nil, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42})
		require.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, repo.cancelled)
	})

	t.Run("in_progress cannot be cancelled", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusInProgress)
		svc := NewService(repo, nil, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 10})
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil, nopLogger{})

		err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{UserID: 10})
		require.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("concurrent cancellation loses the race", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		repo.cancelErr = bookingRepo.ErrStatusConflict
		svc := NewService(repo, nil, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 10})
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, repo.cancelled)
	})

	t.Run("nil matcher does not panic", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[1] = storedBooking(t, 1, domain.StatusBooked)
		svc := NewService(repo, nil, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 10})
		require.NoError(t, err)
	})
}

func TestServiceGetSeries(t *testing.T) {
	repo := newFakeRepo()
	repo.bySeries["s-1"] = []*domain.Booking{
		storedBooking(t, 1, domain.StatusBooked),
		storedBooking(t, 2, domain.StatusBooked),
	}
	svc := NewService(repo, nil, nopLogger{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetSeries(context.Background(), "s-1")
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("empty series is not found", func(t *testing.T) {
		_, err := svc.GetSeries(context.Background(), "s-2")
		require.ErrorIs(t, err, ErrSeriesNotFound)
	})
}

func TestServiceGetBranchBookings(t *testing.T) {
	repo := newFakeRepo()
	repo.listed = []*domain.Booking{storedBooking(t, 1, domain.StatusBooked)}
	svc := NewService(repo, nil, nopLogger{})

	t.Run("lists branch bookings", func(t *testing.T) {
		resp, err := svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
			BranchID: 3,
			Date:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(3), resp.Bookings[0].BranchID)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		bad := "paused"
		_, err := svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
			BranchID: 3,
			Date:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			Status:   &bad,
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
