package match_waitlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	slotDate = time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)
	now      = time.Date(2025, time.October, 10, 12, 0, 0, 0, time.UTC)
)

func entry(id int64, prefDate time.Time, start, end types.TimeString) *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:             id,
		CustomerID:     id * 100,
		StaffID:        42,
		PreferredDate:  prefDate,
		PreferredStart: start,
		PreferredEnd:   end,
		Status:         domain.WaitlistActive,
	}
}

func TestMatch_DirectSameDayOverlap(t *testing.T) {
	entries := []*domain.WaitlistEntry{
		entry(1, slotDate, "10:00", "11:00"),
		entry(2, slotDate, "14:00", "15:00"),
	}
	window := domain.TimeRange{Start: "10:30", End: "11:30"}

	got := match(entries, slotDate, window, now)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestMatch_FlexibleDays(t *testing.T) {
	e := entry(1, slotDate.AddDate(0, 0, 2), "10:00", "11:00")
	e.FlexibleDays = 3
	e.FlexibleHours = 2

	strict := entry(2, slotDate.AddDate(0, 0, 2), "10:00", "11:00")
	// Нулевая гибкость: другая дата не подходит

	window := domain.TimeRange{Start: "10:00", End: "11:00"}

	got := match([]*domain.WaitlistEntry{e, strict}, slotDate, window, now)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestMatch_FlexibleHours(t *testing.T) {
	near := entry(1, slotDate, "12:00", "13:00")
	near.FlexibleDays = 0
	near.FlexibleHours = 2

	far := entry(2, slotDate, "16:00", "17:00")
	far.FlexibleDays = 0
	far.FlexibleHours = 2

	// Интервал освободился в 10:00: до окна 12:00 два часа, до 16:00 - шесть
	window := domain.TimeRange{Start: "10:00", End: "11:00"}

	got := match([]*domain.WaitlistEntry{near, far}, slotDate, window, now)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestMatch_SkipsNonActiveAndExpired(t *testing.T) {
	notified := entry(1, slotDate, "10:00", "11:00")
	notified.Status = domain.WaitlistNotified

	cancelled := entry(2, slotDate, "10:00", "11:00")
	cancelled.Status = domain.WaitlistCancelled

	expired := entry(3, slotDate, "10:00", "11:00")
	expired.ExpiresAt = ptr.Ptr(now.Add(-time.Hour))

	alive := entry(4, slotDate, "10:00", "11:00")
	alive.ExpiresAt = ptr.Ptr(now.Add(time.Hour))

	window := domain.TimeRange{Start: "10:00", End: "11:00"}

	got := match([]*domain.WaitlistEntry{notified, cancelled, expired, alive}, slotDate, window, now)

	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)
}

func TestMatch_PreservesInputOrder(t *testing.T) {
	// Репозиторий отдаёт записи по приоритету: порядок результата детерминирован
	entries := []*domain.WaitlistEntry{
		entry(3, slotDate, "10:00", "11:00"),
		entry(1, slotDate, "10:00", "11:00"),
		entry(2, slotDate, "10:00", "11:00"),
	}
	window := domain.TimeRange{Start: "10:00", End: "11:00"}

	got := match(entries, slotDate, window, now)

	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(2), got[2].ID)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, time.October, 15, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.October, 17, 1, 0, 0, 0, time.UTC)

	// Время внутри суток игнорируется, расстояние симметрично
	assert.Equal(t, 2, daysBetween(a, b))
	assert.Equal(t, 2, daysBetween(b, a))
	assert.Equal(t, 0, daysBetween(a, a))
}

func TestMinutesToWindow(t *testing.T) {
	window := domain.TimeRange{Start: "12:00", End: "13:00"}

	assert.Equal(t, 120, minutesToWindow(10*60, window))
	assert.Equal(t, 0, minutesToWindow(12*60+30, window))
	assert.Equal(t, 60, minutesToWindow(14*60, window))
}
