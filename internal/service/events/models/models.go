package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// Request модели

// ListEventsRequest запрос на получение событий бизнеса с фильтрацией
type ListEventsRequest struct {
	BusinessID       uuid.UUID  `json:"businessId"`
	StaffID          *uuid.UUID `json:"staffId,omitempty"`
	RangeStart       *time.Time `json:"rangeStart,omitempty"`
	RangeEnd         *time.Time `json:"rangeEnd,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled"`
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListEventsRequest) ToDomainFilter() domain.StaffEventsFilter {
	return domain.StaffEventsFilter{
		BusinessID:       r.BusinessID,
		StaffID:          r.StaffID,
		RangeStart:       r.RangeStart,
		RangeEnd:         r.RangeEnd,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// Response модели

// EventResponse ответ с данными события
type EventResponse struct {
	ID          uuid.UUID  `json:"id"`
	BusinessID  uuid.UUID  `json:"businessId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StaffID     uuid.UUID  `json:"staffId"`
	ProcedureID *uuid.UUID `json:"procedureId,omitempty"`
	ClientName  *string    `json:"clientName,omitempty"`
	ClientPhone *string    `json:"clientPhone,omitempty"`
	ClientEmail *string    `json:"clientEmail,omitempty"`
	StartAt     time.Time  `json:"startAt"`
	EndAt       time.Time  `json:"endAt"`
	Status      string     `json:"status"`
	Source      string     `json:"source"`
	Notes       *string    `json:"notes,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// EventListResponse ответ со списком событий
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// Методы конвертации

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.Event) *EventResponse {
	if e == nil {
		return nil
	}

	return &EventResponse{
		ID:          e.ID,
		BusinessID:  e.BusinessID,
		Title:       e.Title,
		Description: e.Description,
		StaffID:     e.StaffID,
		ProcedureID: e.ProcedureID,
		ClientName:  e.ClientName,
		ClientPhone: e.ClientPhone,
		ClientEmail: e.ClientEmail,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		Status:      string(e.Status),
		Source:      string(e.Source),
		Notes:       e.Notes,
		CancelledAt: e.CancelledAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// FromDomainEventList конвертирует список domain моделей в DTO
func FromDomainEventList(events []*domain.Event) *EventListResponse {
	resp := &EventListResponse{
		Events: make([]EventResponse, 0, len(events)),
	}

	for _, e := range events {
		resp.Events = append(resp.Events, *FromDomainEvent(e))
	}

	return resp
}
