package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// TimeRange полуоткрытый интервал [Start, End) с минутной точностью
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid возвращает true, если Start строго раньше End
func (r TimeRange) IsValid() bool {
	return r.Start.IsBefore(r.End)
}

// DurationMinutes возвращает длительность интервала в минутах
func (r TimeRange) DurationMinutes() int {
	return r.End.Minutes() - r.Start.Minutes()
}

// Overlaps возвращает true, если интервалы действительно пересекаются
// Граничные случаи пересечением не считаются: интервал, заканчивающийся в 10:00,
// не конфликтует с интервалом, начинающимся в 10:00
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Contains возвращает true, если other целиком лежит внутри r
func (r TimeRange) Contains(other TimeRange) bool {
	return !r.Start.IsAfter(other.Start) && !other.End.IsAfter(r.End)
}
