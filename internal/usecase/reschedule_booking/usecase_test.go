package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type cancelCall struct {
	id         int64
	fromStatus domain.BookingStatus
	reason     string
}

// fakeBookingRepo записывает порядок операций: перенос обязан
// отменить старое бронирование до создания нового
type fakeBookingRepo struct {
	booking *domain.Booking

	ops       []string
	cancelled *cancelCall
	created   *domain.Booking
	cancelErr error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, fromStatus domain.BookingStatus, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.ops = append(f.ops, "cancel")
	f.cancelled = &cancelCall{id: id, fromStatus: fromStatus, reason: reason}
	return nil
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.ops = append(f.ops, "create")
	stored := *b
	stored.ID = 301
	f.created = &stored
	return &stored, nil
}

type fakeConflictChecker struct {
	err       error
	excludeID *int64
}

func (f *fakeConflictChecker) Check(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, excludeBookingID *int64) error {
	f.excludeID = excludeBookingID
	return f.err
}

// fakeMatcher сигнализирует о фоновом вызове через канал
type fakeMatcher struct {
	called chan domain.TimeRange
}

func newFakeMatcher() *fakeMatcher {
	return &fakeMatcher{called: make(chan domain.TimeRange, 1)}
}

func (f *fakeMatcher) MatchAndNotify(_ context.Context, _, _ int64, _ time.Time, window domain.TimeRange) error {
	f.called <- window
	return nil
}

func (f *fakeMatcher) waitCalled(t *testing.T) domain.TimeRange {
	t.Helper()
	select {
	case window := <-f.called:
		return window
	case <-time.After(2 * time.Second):
		t.Fatal("matcher was not invoked")
		return domain.TimeRange{}
	}
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func bookedBooking() *domain.Booking {
	notes := "у окна"
	return &domain.Booking{
		ID:          55,
		CustomerID:  10,
		StaffID:     7,
		BranchID:    3,
		ServiceID:   4,
		Date:        time.Now().AddDate(0, 0, 7),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      domain.StatusBooked,
		ServiceName: "Стрижка",
		TotalAmount: 1500,
		Notes:       &notes,
	}
}

func rescheduleRequest() *Request {
	return &Request{
		BookingID: 55,
		UserID:    10,
		Date:      time.Now().AddDate(0, 1, 0),
		StartTime: "14:00",
		EndTime:   "15:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: bookedBooking()}
	checker := &fakeConflictChecker{}
	matcher := newFakeMatcher()
	uc := NewUseCase(repo, checker, matcher, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), rescheduleRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(301), resp.ID)
	assert.Equal(t, int64(55), resp.CancelledBookingID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.TotalAmount)

	// Отмена строго до создания, в одной транзакции
	assert.Equal(t, []string{"cancel", "create"}, repo.ops)

	require.NotNil(t, repo.cancelled)
	assert.Equal(t, int64(55), repo.cancelled.id)
	assert.Equal(t, domain.StatusBooked, repo.cancelled.fromStatus)
	assert.Equal(t, cancelReasonRescheduled, repo.cancelled.reason)

	require.NotNil(t, repo.created)
	assert.Equal(t, types.TimeString("14:00"), repo.created.StartTime)
	assert.Equal(t, domain.RecurrenceNone, repo.created.RecurrencePattern)

	// Освободился старый слот, а не новый
	window := matcher.waitCalled(t)
	assert.Equal(t, types.TimeString("09:00"), window.Start)
	assert.Equal(t, types.TimeString("10:00"), window.End)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	repo := &fakeBookingRepo{booking: bookedBooking()}
	checker := &fakeConflictChecker{err: &domain.ConflictError{
		StaffID:        7,
		Requested:      domain.TimeRange{Start: "14:00", End: "15:00"},
		OverlappingIDs: []int64{60},
	}}
	uc := NewUseCase(repo, checker, nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), rescheduleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, repo.ops)

	// Своё бронирование не блокирует свой же интервал
	require.NotNil(t, checker.excludeID)
	assert.Equal(t, int64(55), *checker.excludeID)
}

func TestUseCase_Execute_BookingChecks(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		uc := NewUseCase(&fakeBookingRepo{}, &fakeConflictChecker{}, nil, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), rescheduleRequest())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("foreign booking", func(t *testing.T) {
		booking := bookedBooking()
		booking.CustomerID = 99
		uc := NewUseCase(&fakeBookingRepo{booking: booking}, &fakeConflictChecker{}, nil, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), rescheduleRequest())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("completed booking", func(t *testing.T) {
		booking := bookedBooking()
		booking.Status = domain.StatusCompleted
		repo := &fakeBookingRepo{booking: booking}
		uc := NewUseCase(repo, &fakeConflictChecker{}, nil, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), rescheduleRequest())
		assert.ErrorIs(t, err, ErrNotReschedulable)
		assert.Empty(t, repo.ops)
	})
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{booking: bookedBooking()}, &fakeConflictChecker{}, nil, fakeTxManager{}, nopLogger{})

	req := rescheduleRequest()
	req.Date = time.Now().AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_CancelFailure(t *testing.T) {
	repo := &fakeBookingRepo{booking: bookedBooking(), cancelErr: bookingRepo.ErrStatusConflict}
	uc := NewUseCase(repo, &fakeConflictChecker{}, nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), rescheduleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, repo.created)
}
