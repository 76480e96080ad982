package match_waitlist

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// match отбирает записи листа ожидания, подходящие под освободившийся интервал
// Чистая функция над снапшотом. Порядок входа сохраняется: репозиторий
// отдаёт записи по приоритету, и ранг кандидата - это его позиция в результате.
//
// Запись подходит, если:
//   - прямое совпадение: та же дата и предпочитаемое окно пересекается
//     с освободившимся интервалом, либо
//   - гибкое совпадение: расстояние в днях не превышает flexibleDays,
//     а расстояние от начала освободившегося интервала до предпочитаемого
//     окна не превышает flexibleHours
func match(entries []*domain.WaitlistEntry, date time.Time, window domain.TimeRange, now time.Time) []*domain.WaitlistEntry {
	matched := make([]*domain.WaitlistEntry, 0)

	for _, entry := range entries {
		if entry.Status != domain.WaitlistActive {
			continue
		}
		if entry.IsExpiredAt(now) {
			continue
		}

		dayDiff := daysBetween(entry.PreferredDate, date)

		if dayDiff == 0 && entry.PreferredWindow().Overlaps(window) {
			matched = append(matched, entry)
			continue
		}

		if dayDiff <= entry.FlexibleDays && minutesToWindow(window.Start.Minutes(), entry.PreferredWindow()) <= entry.FlexibleHours*60 {
			matched = append(matched, entry)
		}
	}

	return matched
}

// daysBetween возвращает модуль расстояния между датами в днях
// Время внутри суток игнорируется
func daysBetween(a, b time.Time) int {
	aOnly := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bOnly := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	diff := int(aOnly.Sub(bOnly).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// minutesToWindow возвращает расстояние в минутах от точки до окна
// Ноль, если точка лежит внутри окна
func minutesToWindow(point int, window domain.TimeRange) int {
	start := window.Start.Minutes()
	end := window.End.Minutes()

	if point < start {
		return start - point
	}
	if point > end {
		return point - end
	}
	return 0
}
