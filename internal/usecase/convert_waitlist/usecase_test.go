package convert_waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
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
	stored.ID = 201
	f.created = &stored
	return &stored, nil
}

type fakeWaitlistRepo struct {
	entry *domain.WaitlistEntry

	getErr        error
	statusUpdates []domain.WaitlistStatus
}

func (f *fakeWaitlistRepo) GetByID(_ context.Context, id int64) (*domain.WaitlistEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.entry == nil || f.entry.ID != id {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	copied := *f.entry
	return &copied, nil
}

func (f *fakeWaitlistRepo) UpdateStatus(_ context.Context, _ int64, status domain.WaitlistStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
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
	service    *directoryservice.Service
	serviceErr error
}

func (f *fakeDirectory) GetService(context.Context, int64) (*directoryservice.Service, error) {
	return f.service, f.serviceErr
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func notifiedEntry() *domain.WaitlistEntry {
	notes := "после обеда"
	return &domain.WaitlistEntry{
		ID:         42,
		CustomerID: 10,
		StaffID:    7,
		BranchID:   3,
		ServiceID:  4,
		Status:     domain.WaitlistNotified,
		Notes:      &notes,
	}
}

func convertRequest() *Request {
	return &Request{
		EntryID:   42,
		UserID:    10,
		Date:      time.Now().AddDate(0, 1, 0),
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func newConvertUseCase(bookings *fakeBookingRepo, waitlist *fakeWaitlistRepo, checker *fakeConflictChecker) *UseCase {
	dir := &fakeDirectory{service: &directoryservice.Service{ID: 4, Name: "Стрижка", DurationMinutes: 60}}
	return NewUseCase(bookings, waitlist, checker, dir, fakeTxManager{}, nopLogger{})
}

func TestUseCase_Execute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	waitlist := &fakeWaitlistRepo{entry: notifiedEntry()}
	checker := &fakeConflictChecker{}
	uc := newConvertUseCase(bookings, waitlist, checker)

	resp, err := uc.Execute(context.Background(), convertRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(201), resp.BookingID)
	assert.Equal(t, int64(42), resp.EntryID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1, checker.calls)

	require.NotNil(t, bookings.created)
	assert.Equal(t, domain.RecurrenceNone, bookings.created.RecurrencePattern)
	assert.Equal(t, []domain.WaitlistStatus{domain.WaitlistConverted}, waitlist.statusUpdates)
}

// Слот заняли между уведомлением и подтверждением: клиент получает конфликт,
// а запись возвращается в active одним-единственным обновлением статуса
func TestUseCase_Execute_SlotTakenRevertsToActive(t *testing.T) {
	bookings := &fakeBookingRepo{}
	waitlist := &fakeWaitlistRepo{entry: notifiedEntry()}
	checker := &fakeConflictChecker{err: &domain.ConflictError{
		StaffID:        7,
		Requested:      domain.TimeRange{Start: "10:00", End: "11:00"},
		OverlappingIDs: []int64{55},
	}}
	uc := newConvertUseCase(bookings, waitlist, checker)

	_, err := uc.Execute(context.Background(), convertRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, bookings.created)
	assert.Equal(t, []domain.WaitlistStatus{domain.WaitlistActive}, waitlist.statusUpdates)
}

func TestUseCase_Execute_EntryChecks(t *testing.T) {
	t.Run("entry not found", func(t *testing.T) {
		waitlist := &fakeWaitlistRepo{}
		uc := newConvertUseCase(&fakeBookingRepo{}, waitlist, &fakeConflictChecker{})

		_, err := uc.Execute(context.Background(), convertRequest())
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("foreign entry", func(t *testing.T) {
		entry := notifiedEntry()
		entry.CustomerID = 99
		uc := newConvertUseCase(&fakeBookingRepo{}, &fakeWaitlistRepo{entry: entry}, &fakeConflictChecker{})

		_, err := uc.Execute(context.Background(), convertRequest())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("entry not notified", func(t *testing.T) {
		entry := notifiedEntry()
		entry.Status = domain.WaitlistActive
		waitlist := &fakeWaitlistRepo{entry: entry}
		uc := newConvertUseCase(&fakeBookingRepo{}, waitlist, &fakeConflictChecker{})

		_, err := uc.Execute(context.Background(), convertRequest())
		assert.ErrorIs(t, err, ErrNotNotified)
		assert.Empty(t, waitlist.statusUpdates)
	})
}

func TestUseCase_Execute_ServiceNotFound(t *testing.T) {
	dir := &fakeDirectory{serviceErr: directoryservice.ErrServiceNotFound}
	uc := NewUseCase(&fakeBookingRepo{}, &fakeWaitlistRepo{entry: notifiedEntry()}, &fakeConflictChecker{}, dir, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), convertRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newConvertUseCase(&fakeBookingRepo{}, &fakeWaitlistRepo{entry: notifiedEntry()}, &fakeConflictChecker{})

	req := convertRequest()
	req.StartTime = "11:00"
	req.EndTime = "10:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
