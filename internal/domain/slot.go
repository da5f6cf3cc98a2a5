package domain

import (
	"time"

	"github.com/google/uuid"
)

// AvailableSlot represents a candidate, non-persisted offer of a staff
// member and an absolute time interval
// Создается заново при каждом вызове резолвера и никогда не мутируется
type AvailableSlot struct {
	StaffID   uuid.UUID `json:"staff_id"`
	StaffName string    `json:"staff_name"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
}

// DurationMinutes возвращает длительность слота в минутах
func (s AvailableSlot) DurationMinutes() int {
	return int(s.EndAt.Sub(s.StartAt).Minutes())
}
