package create_event

import (
	"time"

	"github.com/google/uuid"

	createEvent "github.com/taimeline/taimeline-service/internal/usecase/create_event"
)

// CreateEventRequest HTTP request model
type CreateEventRequest struct {
	StaffID     uuid.UUID  `json:"staffId"`
	ProcedureID *uuid.UUID `json:"procedureId,omitempty"`
	Title       string     `json:"title,omitempty"`
	ClientName  *string    `json:"clientName,omitempty"`
	ClientPhone *string    `json:"clientPhone,omitempty"`
	StartAt     time.Time  `json:"startAt"`
	EndAt       *time.Time `json:"endAt,omitempty"`
	Source      string     `json:"source,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateEventRequest) ToUseCaseRequest(businessID uuid.UUID) *createEvent.Request {
	req := &createEvent.Request{
		BusinessID:  businessID,
		StaffID:     r.StaffID,
		ProcedureID: r.ProcedureID,
		Title:       r.Title,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		StartAt:     r.StartAt,
		Source:      r.Source,
		Notes:       r.Notes,
	}
	if r.EndAt != nil {
		req.EndAt = *r.EndAt
	}
	return req
}
