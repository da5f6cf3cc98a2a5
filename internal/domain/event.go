package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the status of a calendar event
type EventStatus string

const (
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusPending   EventStatus = "pending"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// EventSource represents the channel that created the event
type EventSource string

const (
	SourceAdmin          EventSource = "admin"
	SourceWhatsApp       EventSource = "whatsapp"
	SourceGoogleCalendar EventSource = "google_calendar"
	SourceManual         EventSource = "manual"
)

// Event represents a confirmed calendar entry binding one staff member
// to an absolute time interval
// Центральный инвариант системы: два события одного сотрудника
// со статусом != cancelled не должны пересекаться по [StartAt, EndAt)
type Event struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	Title       string
	Description *string
	StaffID     uuid.UUID
	ProcedureID *uuid.UUID
	ClientName  *string
	ClientPhone *string
	ClientEmail *string
	StartAt     time.Time
	EndAt       time.Time
	Status      EventStatus
	Source      EventSource
	Notes       *string
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCancelled returns true if the event has been cancelled
func (e *Event) IsCancelled() bool {
	return e.Status == EventStatusCancelled
}

// OccupiesTime возвращает true, если событие занимает время сотрудника
// Отменённые события время не занимают
func (e *Event) OccupiesTime() bool {
	return e.Status != EventStatusCancelled
}

// CanBeCancelled returns true if the event can be cancelled
func (e *Event) CanBeCancelled() bool {
	return e.Status == EventStatusConfirmed || e.Status == EventStatusPending
}

// Overlaps проверяет пересечение события с интервалом [start, end)
// Строгие неравенства: граничащие интервалы не считаются пересечением
func (e *Event) Overlaps(start, end time.Time) bool {
	return e.StartAt.Before(end) && start.Before(e.EndAt)
}

// StaffEventsFilter фильтр для выборки событий
type StaffEventsFilter struct {
	BusinessID       uuid.UUID  // Обязательный параметр
	StaffID          *uuid.UUID // Фильтр по сотруднику (опционально)
	RangeStart       *time.Time // Начало периода (опционально)
	RangeEnd         *time.Time // Конец периода (опционально)
	IncludeCancelled bool       // Включать ли отменённые события
}
