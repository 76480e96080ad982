package get_availability

import "sort"

// minuteRange полуинтервал [start, end) в минутах от полуночи
type minuteRange struct {
	start int
	end   int
}

// isEmpty возвращает true для интервала нулевой или отрицательной длины
func (r minuteRange) isEmpty() bool {
	return r.start >= r.end
}

// clampTo обрезает интервал границами other
func (r minuteRange) clampTo(other minuteRange) minuteRange {
	clamped := r
	if clamped.start < other.start {
		clamped.start = other.start
	}
	if clamped.end > other.end {
		clamped.end = other.end
	}
	return clamped
}

// mergeRanges сливает пересекающиеся и граничащие интервалы в максимальные
// Вход не обязан быть отсортированным, пустые интервалы отбрасываются
func mergeRanges(ranges []minuteRange) []minuteRange {
	nonEmpty := make([]minuteRange, 0, len(ranges))
	for _, r := range ranges {
		if !r.isEmpty() {
			nonEmpty = append(nonEmpty, r)
		}
	}

	if len(nonEmpty) == 0 {
		return nonEmpty
	}

	sort.Slice(nonEmpty, func(i, j int) bool {
		if nonEmpty[i].start != nonEmpty[j].start {
			return nonEmpty[i].start < nonEmpty[j].start
		}
		return nonEmpty[i].end < nonEmpty[j].end
	})

	merged := []minuteRange{nonEmpty[0]}
	for _, r := range nonEmpty[1:] {
		last := &merged[len(merged)-1]
		// Граничащие интервалы тоже сливаются: end == start не разрывает занятость
		if r.start <= last.end {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}

	return merged
}

// subtractRanges вычитает busy из working и возвращает максимальные
// свободные интервалы в порядке возрастания
func subtractRanges(working minuteRange, busy []minuteRange) []minuteRange {
	if working.isEmpty() {
		return []minuteRange{}
	}

	clamped := make([]minuteRange, 0, len(busy))
	for _, b := range busy {
		c := b.clampTo(working)
		if !c.isEmpty() {
			clamped = append(clamped, c)
		}
	}

	merged := mergeRanges(clamped)

	free := make([]minuteRange, 0, len(merged)+1)
	cursor := working.start

	for _, b := range merged {
		if cursor < b.start {
			free = append(free, minuteRange{start: cursor, end: b.start})
		}
		cursor = b.end
	}

	if cursor < working.end {
		free = append(free, minuteRange{start: cursor, end: working.end})
	}

	return free
}
