package domain

import (
	"time"

	"github.com/google/uuid"
)

// Procedure represents a bookable service offering
// Удаление мягкое (IsActive = false), чтобы исторические события
// могли продолжать ссылаться на процедуру
type Procedure struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	Price           *float64
	Color           string
	IsActive        bool
	// StaffIDs - сотрудники, которые могут выполнять процедуру
	StaffIDs  []uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBePerformedBy возвращает true, если сотрудник staffID может выполнять процедуру
func (p *Procedure) CanBePerformedBy(staffID uuid.UUID) bool {
	for _, id := range p.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
