package domain

import (
	"time"

	"github.com/google/uuid"
)

// Staff represents a worker with a recurring weekly work schedule
type Staff struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Email      string
	Phone      *string
	Role       string
	IsActive   bool
	Schedule   WorkSchedule
	AvatarURL  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WorksOn возвращает true, если у сотрудника есть рабочие интервалы в указанный день недели
func (s *Staff) WorksOn(weekday time.Weekday) bool {
	return len(s.Schedule.IntervalsFor(weekday)) > 0
}
