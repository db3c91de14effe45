package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// busyInterval занятый интервал с причиной недоступности
type busyInterval struct {
	interval domain.Interval
	reason   string
}

// dayWindow возвращает границы календарного дня [00:00, следующий день 00:00) в зоне loc
func dayWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ruleWindows привязывает правила к дате.
// Без merge каждое правило нарезается независимо, пересекающиеся правила дают дублирующиеся слоты.
func ruleWindows(rules []*domain.ScheduleRule, dayStart time.Time, merge bool) []domain.Interval {
	windows := make([]domain.Interval, 0, len(rules))
	for _, rule := range rules {
		window := rule.Window(dayStart)
		if !window.IsValid() {
			continue
		}
		windows = append(windows, window)
	}

	if merge {
		return domain.MergeIntervals(windows)
	}
	return windows
}

// busyIntervals собирает занятость сотрудника. Бронирования идут первыми:
// при пересечении и с бронированием, и с блокировкой причина берется от бронирования.
func busyIntervals(bookings []*domain.Booking, blocks []*domain.Block) []busyInterval {
	result := make([]busyInterval, 0, len(bookings)+len(blocks))

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		result = append(result, busyInterval{
			interval: booking.Interval(),
			reason:   domain.ReasonBooked,
		})
	}

	for _, block := range blocks {
		reason := block.Reason
		if reason == "" {
			reason = domain.ReasonBlocked
		}
		result = append(result, busyInterval{
			interval: block.Interval(),
			reason:   reason,
		})
	}

	return result
}

// generateSlots шагает по каждому окну с шагом duration.
// Слот [current, current+duration) выдается, пока current < конца окна, и только если current строго после now.
// Пересечение проверяется по полуоткрытым интервалам: встык с записью - не конфликт.
func generateSlots(
	windows []domain.Interval,
	duration time.Duration,
	busy []busyInterval,
	now time.Time,
) []domain.SlotResult {
	slots := make([]domain.SlotResult, 0)
	if duration <= 0 {
		return slots
	}

	for _, window := range windows {
		for current := window.Start; current.Before(window.End); current = current.Add(duration) {
			if !current.After(now) {
				continue
			}

			slot := domain.SlotResult{
				Time:      types.NewTimeString(current),
				Available: true,
			}

			candidate := domain.Interval{Start: current, End: current.Add(duration)}
			if reason, busy := findConflict(candidate, busy); busy {
				slot.Available = false
				slot.Reason = &reason
			}

			slots = append(slots, slot)
		}
	}

	return slots
}

// findConflict возвращает причину первого пересечения
func findConflict(slot domain.Interval, busy []busyInterval) (string, bool) {
	for _, b := range busy {
		if slot.Overlaps(b.interval) {
			return b.reason, true
		}
	}
	return "", false
}

// countAvailability считает доступные и недоступные слоты
func countAvailability(slots []domain.SlotResult) (available, unavailable int) {
	for _, slot := range slots {
		if slot.Available {
			available++
		} else {
			unavailable++
		}
	}
	return available, unavailable
}
