package create_recurring_series

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// expand раскрывает спецификацию повторения в список дат экземпляров
// Чистая функция: первая дата серии - anchor, дальше шаг по шаблону.
//
// Для monthly дата, отсутствующая в целевом месяце (31-е в феврале),
// пропускается целиком, а не сдвигается на последний день месяца.
// EndDate включительна. Количество экземпляров ограничено maxInstances
func expand(anchor time.Time, spec domain.RecurrenceSpec, maxInstances int) []time.Time {
	if maxInstances <= 0 {
		maxInstances = domain.DefaultMaxRecurrenceInstances
	}

	if spec.Pattern == domain.RecurrenceCustom {
		return expandCustom(spec.CustomDates, spec.EndDate, maxInstances)
	}

	dates := make([]time.Time, 0, maxInstances)

	// Жёсткая граница шагов гарантирует завершение: месяцы без нужного числа
	// пропускаются, но их не может быть больше половины
	maxSteps := maxInstances * 12

	for step := 0; len(dates) < maxInstances && step <= maxSteps; step++ {
		candidate, exists := dateAtStep(anchor, spec.Pattern, spec.Interval, step)

		if spec.EndDate != nil && candidate.After(*spec.EndDate) {
			break
		}
		if !exists {
			continue
		}

		dates = append(dates, candidate)
	}

	return dates
}

// dateAtStep возвращает дату экземпляра на шаге step и признак её существования
// Для monthly шаг может попасть в месяц без нужного числа - тогда exists = false,
// но обёртка месяца всё равно возвращается для сравнения с EndDate
func dateAtStep(anchor time.Time, pattern domain.RecurrencePattern, interval int, step int) (time.Time, bool) {
	switch pattern {
	case domain.RecurrenceDaily:
		return anchor.AddDate(0, 0, step*interval), true
	case domain.RecurrenceWeekly:
		return anchor.AddDate(0, 0, step*interval*7), true
	case domain.RecurrenceMonthly:
		return monthlyDate(anchor, step*interval)
	default:
		return anchor, step == 0
	}
}

// monthlyDate возвращает дату через months месяцев от anchor с тем же числом
// Если в целевом месяце нет такого числа, exists = false, а возвращаемая дата -
// первое число целевого месяца (для сравнения с EndDate)
func monthlyDate(anchor time.Time, months int) (time.Time, bool) {
	firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	target := firstOfMonth.AddDate(0, months, 0)

	if anchor.Day() > daysInMonth(target.Year(), target.Month()) {
		return target, false
	}

	return time.Date(target.Year(), target.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location()), true
}

// daysInMonth возвращает количество дней в месяце
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// expandCustom отбирает даты явного списка с учётом EndDate и лимита
// Даты приходят отсортированными и без дублей (гарантируется валидацией)
func expandCustom(customDates []time.Time, endDate *time.Time, maxInstances int) []time.Time {
	dates := make([]time.Time, 0, len(customDates))

	for _, d := range customDates {
		if len(dates) >= maxInstances {
			break
		}
		if endDate != nil && d.After(*endDate) {
			continue
		}
		dates = append(dates, d)
	}

	return dates
}
