package find_available_slots

import (
	"fmt"
	"time"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// generateCandidateStarts строит времена начала кандидатов слотов внутри рабочего интервала.
//
// При stepMinutes = 0 кандидат один: начало рабочего интервала (если процедура
// целиком помещается в интервал). При stepMinutes > 0 кандидаты идут плотной
// сеткой от начала интервала с заданным шагом, последний кандидат тот, чьё
// окончание (начало + длительность) ещё помещается в интервал.
func generateCandidateStarts(interval domain.TimeInterval, date time.Time, loc *time.Location, durationMinutes, stepMinutes int) ([]time.Time, error) {
	start, err := interval.Start.OnDate(date, loc)
	if err != nil {
		return nil, fmt.Errorf("interval start: %w", err)
	}

	end, err := interval.End.OnDate(date, loc)
	if err != nil {
		return nil, fmt.Errorf("interval end: %w", err)
	}

	duration := time.Duration(durationMinutes) * time.Minute

	if stepMinutes <= 0 {
		if start.Add(duration).After(end) {
			return nil, nil
		}
		return []time.Time{start}, nil
	}

	step := time.Duration(stepMinutes) * time.Minute

	var candidates []time.Time
	for t := start; !t.Add(duration).After(end); t = t.Add(step) {
		candidates = append(candidates, t)
	}

	return candidates, nil
}

// dayStart возвращает полночь указанного дня в заданной таймзоне
func dayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
