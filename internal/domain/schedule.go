package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/taimeline/taimeline-service/pkg/types"
)

var (
	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("interval end must be after start")

	// ErrOverlappingIntervals возвращается, когда интервалы внутри одного дня пересекаются
	ErrOverlappingIntervals = errors.New("intervals within a day must not overlap")
)

// TimeInterval интервал времени суток [Start, End) в формате HH:MM
// Полуоткрытая семантика: событие, заканчивающееся в 10:00,
// не пересекается с событием, начинающимся в 10:00
type TimeInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Validate проверяет, что конец интервала строго позже начала
func (i TimeInterval) Validate() error {
	if _, err := i.Start.Parse(); err != nil {
		return fmt.Errorf("%w: invalid start %q", ErrInvalidInterval, i.Start)
	}
	if _, err := i.End.Parse(); err != nil {
		return fmt.Errorf("%w: invalid end %q", ErrInvalidInterval, i.End)
	}
	if !i.Start.IsBefore(i.End) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidInterval, i.Start, i.End)
	}
	return nil
}

// WorkSchedule недельное рабочее расписание сотрудника
// Для каждого дня недели - список рабочих интервалов
type WorkSchedule struct {
	Monday    []TimeInterval `json:"monday"`
	Tuesday   []TimeInterval `json:"tuesday"`
	Wednesday []TimeInterval `json:"wednesday"`
	Thursday  []TimeInterval `json:"thursday"`
	Friday    []TimeInterval `json:"friday"`
	Saturday  []TimeInterval `json:"saturday"`
	Sunday    []TimeInterval `json:"sunday"`
}

// IntervalsFor возвращает рабочие интервалы на указанный день недели
// time.Weekday - закрытое перечисление, некорректный день непредставим
func (s *WorkSchedule) IntervalsFor(weekday time.Weekday) []TimeInterval {
	switch weekday {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return nil
	}
}

// Validate проверяет корректность всех интервалов расписания
// Каждый интервал должен удовлетворять start < end,
// интервалы внутри одного дня не должны пересекаться между собой
func (s *WorkSchedule) Validate() error {
	days := []struct {
		name      string
		intervals []TimeInterval
	}{
		{"monday", s.Monday},
		{"tuesday", s.Tuesday},
		{"wednesday", s.Wednesday},
		{"thursday", s.Thursday},
		{"friday", s.Friday},
		{"saturday", s.Saturday},
		{"sunday", s.Sunday},
	}

	for _, day := range days {
		for i, interval := range day.intervals {
			if err := interval.Validate(); err != nil {
				return fmt.Errorf("%s: %w", day.name, err)
			}

			// Проверяем пересечение с остальными интервалами дня
			for j := i + 1; j < len(day.intervals); j++ {
				other := day.intervals[j]
				if interval.Start.IsBefore(other.End) && other.Start.IsBefore(interval.End) {
					return fmt.Errorf("%s: %w: %s-%s and %s-%s",
						day.name, ErrOverlappingIntervals,
						interval.Start, interval.End, other.Start, other.End)
				}
			}
		}
	}

	return nil
}

// IsEmpty возвращает true, если в расписании нет ни одного рабочего интервала
func (s *WorkSchedule) IsEmpty() bool {
	return len(s.Monday) == 0 && len(s.Tuesday) == 0 && len(s.Wednesday) == 0 &&
		len(s.Thursday) == 0 && len(s.Friday) == 0 && len(s.Saturday) == 0 && len(s.Sunday) == 0
}
