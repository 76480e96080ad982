package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct {
	t time.Time
}

func (f fixedTime) Now() time.Time {
	return f.t
}

type fakeRepo struct {
	byID         map[int64]*domain.WaitlistEntry
	active       []*domain.WaitlistEntry
	branchActive []*domain.WaitlistEntry
	created      *domain.WaitlistEntry
	statuses     map[int64]domain.WaitlistStatus
	expired      int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:     make(map[int64]*domain.WaitlistEntry),
		statuses: make(map[int64]domain.WaitlistStatus),
	}
}

func (f *fakeRepo) Create(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	stored := *entry
	stored.ID = 77
	f.created = &stored
	return &stored, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.WaitlistEntry, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, waitlistRepo.ErrEntryNotFound
}

func (f *fakeRepo) GetActiveByStaff(context.Context, int64) ([]*domain.WaitlistEntry, error) {
	return f.active, nil
}

func (f *fakeRepo) GetActiveByBranch(context.Context, int64) ([]*domain.WaitlistEntry, error) {
	return f.branchActive, nil
}

func (f *fakeRepo) GetActiveByCustomerStaffAndDate(context.Context, int64, int64, time.Time) ([]*domain.WaitlistEntry, error) {
	return f.active, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.WaitlistStatus) error {
	f.statuses[id] = status
	return nil
}

func (f *fakeRepo) ExpireStale(context.Context, time.Time) (int64, error) {
	return f.expired, nil
}

func (f *fakeRepo) GetStatsByBranch(_ context.Context, branchID int64) (*domain.WaitlistStats, error) {
	return &domain.WaitlistStats{BranchID: branchID, TotalActive: 3}, nil
}

var testNow = time.Date(2025, time.October, 10, 12, 0, 0, 0, time.UTC)

func newService(repo *fakeRepo) *Service {
	return NewService(repo, fixedTime{t: testNow}, nopLogger{})
}

func validAddRequest() *models.AddEntryRequest {
	return &models.AddEntryRequest{
		CustomerID:     1,
		StaffID:        2,
		BranchID:       3,
		ServiceID:      4,
		PreferredDate:  "2025-10-15",
		PreferredStart: "10:00",
		PreferredEnd:   "11:00",
		FlexibleDays:   2,
		FlexibleHours:  1,
		Priority:       5,
	}
}

func TestService_Add_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	resp, err := svc.Add(context.Background(), validAddRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, string(domain.WaitlistActive), resp.Status)

	// Срок действия по умолчанию: 7 дней от текущего момента
	require.NotNil(t, repo.created.ExpiresAt)
	assert.Equal(t, testNow.AddDate(0, 0, domain.DefaultWaitlistExpiryDays), *repo.created.ExpiresAt)
}

func TestService_Add_Validation(t *testing.T) {
	svc := newService(newFakeRepo())

	tests := []struct {
		name   string
		mutate func(*models.AddEntryRequest)
	}{
		{"bad date", func(r *models.AddEntryRequest) { r.PreferredDate = "15.10.2025" }},
		{"bad start", func(r *models.AddEntryRequest) { r.PreferredStart = "25:00" }},
		{"zero length window", func(r *models.AddEntryRequest) { r.PreferredEnd = r.PreferredStart }},
		{"flexible days too large", func(r *models.AddEntryRequest) { r.FlexibleDays = 31 }},
		{"flexible hours too large", func(r *models.AddEntryRequest) { r.FlexibleHours = 13 }},
		{"negative priority", func(r *models.AddEntryRequest) { r.Priority = -1 }},
		{"expiry in the past", func(r *models.AddEntryRequest) {
			r.ExpiresAt = ptr.Ptr(testNow.Add(-time.Hour).Format(time.RFC3339))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAddRequest()
			tt.mutate(req)
			_, err := svc.Add(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Add_Duplicate(t *testing.T) {
	repo := newFakeRepo()
	repo.active = []*domain.WaitlistEntry{{ID: 5, Status: domain.WaitlistActive}}
	svc := newService(repo)

	_, err := svc.Add(context.Background(), validAddRequest())
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestService_Withdraw(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[10] = &domain.WaitlistEntry{ID: 10, CustomerID: 1, Status: domain.WaitlistActive}
		svc := newService(repo)

		err := svc.Withdraw(context.Background(), 10, &models.WithdrawRequest{UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, domain.WaitlistCancelled, repo.statuses[10])
	})

	t.Run("not found", func(t *testing.T) {
		svc := newService(newFakeRepo())

		err := svc.Withdraw(context.Background(), 999, &models.WithdrawRequest{UserID: 1})
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("foreign entry", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[10] = &domain.WaitlistEntry{ID: 10, CustomerID: 1, Status: domain.WaitlistActive}
		svc := newService(repo)

		err := svc.Withdraw(context.Background(), 10, &models.WithdrawRequest{UserID: 2})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("terminal status", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byID[10] = &domain.WaitlistEntry{ID: 10, CustomerID: 1, Status: domain.WaitlistConverted}
		svc := newService(repo)

		err := svc.Withdraw(context.Background(), 10, &models.WithdrawRequest{UserID: 1})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_GetBranchWaitlist(t *testing.T) {
	repo := newFakeRepo()
	repo.branchActive = []*domain.WaitlistEntry{
		{ID: 1, BranchID: 3, StaffID: 2, Status: domain.WaitlistActive, Priority: 9},
		{ID: 2, BranchID: 3, StaffID: 5, Status: domain.WaitlistActive, Priority: 1},
	}
	svc := newService(repo)

	resp, err := svc.GetBranchWaitlist(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	// Порядок репозитория (приоритет, затем создание) сохраняется без пересортировки
	assert.Equal(t, int64(1), resp.Entries[0].ID)
	assert.Equal(t, int64(2), resp.Entries[1].ID)
}

func TestService_ExpireStale(t *testing.T) {
	repo := newFakeRepo()
	repo.expired = 4
	svc := newService(repo)

	resp, err := svc.ExpireStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.ExpiredCount)
}
