package domain

import "time"

// HasConflict проверяет, пересекается ли интервал [start, end)
// хотя бы с одним активным (не отменённым) событием из снапшота events
//
// Проверка чистая: работает только с переданным снапшотом,
// хранилище не запрашивается
//
// Интервалы [s1,e1) и [s2,e2) пересекаются, только если:
// - начало события СТРОГО раньше конца кандидата И
// - начало кандидата СТРОГО раньше конца события
//
// Примеры:
// - Кандидат 11:30-12:00, событие 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Кандидат 11:30-12:00, событие 11:00-11:30 → НЕТ пересечения (граничат)
// - Кандидат 11:30-12:00, событие 12:00-12:30 → НЕТ пересечения (граничат)
func HasConflict(start, end time.Time, events []*Event) bool {
	for _, event := range events {
		// Отменённые события не занимают время сотрудника
		if !event.OccupiesTime() {
			continue
		}

		if event.Overlaps(start, end) {
			return true
		}
	}

	return false
}
