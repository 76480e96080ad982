package match_waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notify"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeWaitlistRepo struct {
	entries []*domain.WaitlistEntry
	getErr  error

	notified    []int64
	notifyErrBy map[int64]error
}

func (f *fakeWaitlistRepo) GetActiveByStaff(context.Context, int64) ([]*domain.WaitlistEntry, error) {
	return f.entries, f.getErr
}

func (f *fakeWaitlistRepo) MarkNotified(_ context.Context, id int64, _ time.Time) error {
	if err, ok := f.notifyErrBy[id]; ok {
		return err
	}
	f.notified = append(f.notified, id)
	return nil
}

type fakePublisher struct {
	slotFreed  []notify.SlotFreedEvent
	matched    []notify.WaitlistMatchedEvent
	publishErr error
}

func (f *fakePublisher) PublishSlotFreed(_ context.Context, e notify.SlotFreedEvent) error {
	f.slotFreed = append(f.slotFreed, e)
	return f.publishErr
}

func (f *fakePublisher) PublishWaitlistMatched(_ context.Context, e notify.WaitlistMatchedEvent) error {
	f.matched = append(f.matched, e)
	return f.publishErr
}

func activeEntry(id int64, priority int) *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:             id,
		CustomerID:     id * 10,
		StaffID:        42,
		PreferredDate:  slotDate,
		PreferredStart: "10:00",
		PreferredEnd:   "11:00",
		Priority:       priority,
		Status:         domain.WaitlistActive,
	}
}

func TestMatchAndNotify_NotifiesAndPublishes(t *testing.T) {
	repo := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{
		activeEntry(1, 5),
		activeEntry(2, 3),
	}}
	pub := &fakePublisher{}
	uc := NewUseCase(repo, pub, nopLogger{})

	window := domain.TimeRange{Start: "10:00", End: "11:00"}
	err := uc.MatchAndNotify(context.Background(), 42, 3, slotDate, window)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, repo.notified)

	require.Len(t, pub.slotFreed, 1)
	assert.Equal(t, int64(42), pub.slotFreed[0].StaffID)
	assert.Equal(t, "10:00", pub.slotFreed[0].StartTime)

	require.Len(t, pub.matched, 1)
	event := pub.matched[0]
	require.Len(t, event.Candidates, 2)
	assert.Equal(t, int64(1), event.Candidates[0].EntryID)
	assert.Equal(t, 0, event.Candidates[0].Rank)
	assert.Equal(t, int64(2), event.Candidates[1].EntryID)
	assert.Equal(t, 1, event.Candidates[1].Rank)
}

func TestMatchAndNotify_NoCandidates(t *testing.T) {
	repo := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{}}
	pub := &fakePublisher{}
	uc := NewUseCase(repo, pub, nopLogger{})

	window := domain.TimeRange{Start: "10:00", End: "11:00"}
	err := uc.MatchAndNotify(context.Background(), 42, 3, slotDate, window)

	require.NoError(t, err)
	// Событие об освобождении слота публикуется даже без кандидатов
	assert.Len(t, pub.slotFreed, 1)
	assert.Empty(t, pub.matched)
}

func TestMatchAndNotify_SkipsRacedEntry(t *testing.T) {
	// Конкурирующий sweep уже перевёл запись 1 в другой статус
	repo := &fakeWaitlistRepo{
		entries: []*domain.WaitlistEntry{
			activeEntry(1, 5),
			activeEntry(2, 3),
		},
		notifyErrBy: map[int64]error{1: waitlistRepo.ErrEntryNotFound},
	}
	pub := &fakePublisher{}
	uc := NewUseCase(repo, pub, nopLogger{})

	window := domain.TimeRange{Start: "10:00", End: "11:00"}
	err := uc.MatchAndNotify(context.Background(), 42, 3, slotDate, window)

	require.NoError(t, err)
	assert.Equal(t, []int64{2}, repo.notified)

	require.Len(t, pub.matched, 1)
	require.Len(t, pub.matched[0].Candidates, 1)
	assert.Equal(t, int64(2), pub.matched[0].Candidates[0].EntryID)
	assert.Equal(t, 0, pub.matched[0].Candidates[0].Rank)
}

func TestMatchAndNotify_NilPublisher(t *testing.T) {
	repo := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{activeEntry(1, 5)}}
	uc := NewUseCase(repo, nil, nopLogger{})

	window := domain.TimeRange{Start: "10:00", End: "11:00"}
	err := uc.MatchAndNotify(context.Background(), 42, 3, slotDate, window)

	require.NoError(t, err)
	// Подбор выполняется и без publisher
	assert.Equal(t, []int64{1}, repo.notified)
}

func TestMatchAndNotify_PublishFailureDoesNotFail(t *testing.T) {
	repo := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{activeEntry(1, 5)}}
	pub := &fakePublisher{publishErr: errors.New("broker unavailable")}
	uc := NewUseCase(repo, pub, nopLogger{})

	window := domain.TimeRange{Start: "10:00", End: "11:00"}
	err := uc.MatchAndNotify(context.Background(), 42, 3, slotDate, window)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.notified)
}

func TestMatchAndNotify_RepositoryError(t *testing.T) {
	repo := &fakeWaitlistRepo{getErr: errors.New("connection reset")}
	uc := NewUseCase(repo, nil, nopLogger{})

	window := domain.TimeRange{Start: "10:00", End: "11:00"}
	err := uc.MatchAndNotify(context.Background(), 42, 3, slotDate, window)

	assert.ErrorIs(t, err, ErrInternal)
}
