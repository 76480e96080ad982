package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	stored := *b
	stored.ID = 101
	f.created = &stored
	return &stored, nil
}

type fakeConflictChecker struct {
	err   error
	calls int
}

func (f *fakeConflictChecker) Check(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, _ *int64) error {
	f.calls++
	return f.err
}

type fakeDirectory struct {
	staff   *directoryservice.Staff
	branch  *directoryservice.Branch
	service *directoryservice.Service

	staffErr   error
	branchErr  error
	serviceErr error
}

func (f *fakeDirectory) GetStaff(context.Context, int64) (*directoryservice.Staff, error) {
	return f.staff, f.staffErr
}

func (f *fakeDirectory) GetBranch(context.Context, int64) (*directoryservice.Branch, error) {
	return f.branch, f.branchErr
}

func (f *fakeDirectory) GetService(context.Context, int64) (*directoryservice.Service, error) {
	return f.service, f.serviceErr
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func alwaysOpen() directoryservice.WeekSchedule {
	day := directoryservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("18:00"),
	}
	return directoryservice.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day,
		Thursday: day, Friday: day, Saturday: day, Sunday: day,
	}
}

func workingDirectory() *fakeDirectory {
	return &fakeDirectory{
		staff: &directoryservice.Staff{
			ID:           2,
			BranchID:     3,
			FullName:     "Анна Смирнова",
			IsActive:     true,
			WorkingHours: alwaysOpen(),
		},
		branch:  &directoryservice.Branch{ID: 3, Name: "Центральный", IsActive: true},
		service: &directoryservice.Service{ID: 4, Name: "Стрижка", DurationMinutes: 60},
	}
}

func futureRequest() *Request {
	return &Request{
		CustomerID: 1,
		StaffID:    2,
		BranchID:   3,
		ServiceID:  4,
		Date:       time.Now().AddDate(1, 0, 0),
		StartTime:  "10:00",
		EndTime:    "11:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	checker := &fakeConflictChecker{}
	uc := NewUseCase(repo, checker, workingDirectory(), fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), futureRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1, checker.calls)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.RecurrenceNone, repo.created.RecurrencePattern)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	repo := &fakeBookingRepo{}
	checker := &fakeConflictChecker{err: &domain.ConflictError{
		StaffID:        2,
		Requested:      domain.TimeRange{Start: "09:30", End: "10:30"},
		OverlappingIDs: []int64{55},
	}}
	uc := NewUseCase(repo, checker, workingDirectory(), fakeTxManager{}, nopLogger{})

	req := futureRequest()
	req.StartTime = "09:30"
	req.EndTime = "10:30"

	_, err := uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, repo.created)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeConflictChecker{}, workingDirectory(), fakeTxManager{}, nopLogger{})

	req := futureRequest()
	req.Date = time.Now().AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_DirectoryChecks(t *testing.T) {
	t.Run("staff not found", func(t *testing.T) {
		dir := workingDirectory()
		dir.staff = nil
		dir.staffErr = directoryservice.ErrStaffNotFound
		uc := NewUseCase(&fakeBookingRepo{}, &fakeConflictChecker{}, dir, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), futureRequest())
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("staff inactive", func(t *testing.T) {
		dir := workingDirectory()
		dir.staff.IsActive = false
		uc := NewUseCase(&fakeBookingRepo{}, &fakeConflictChecker{}, dir, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), futureRequest())
		assert.ErrorIs(t, err, ErrStaffInactive)
	})

	t.Run("staff in another branch", func(t *testing.T) {
		dir := workingDirectory()
		dir.staff.BranchID = 99
		uc := NewUseCase(&fakeBookingRepo{}, &fakeConflictChecker{}, dir, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), futureRequest())
		assert.ErrorIs(t, err, ErrStaffNotInBranch)
	})

	t.Run("service not found", func(t *testing.T) {
		dir := workingDirectory()
		dir.service = nil
		dir.serviceErr = directoryservice.ErrServiceNotFound
		uc := NewUseCase(&fakeBookingRepo{}, &fakeConflictChecker{}, dir, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), futureRequest())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestUseCase_Execute_OutsideWorkingHours(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeConflictChecker{}, workingDirectory(), fakeTxManager{}, nopLogger{})

	req := futureRequest()
	req.StartTime = "08:00"
	req.EndTime = "09:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}
