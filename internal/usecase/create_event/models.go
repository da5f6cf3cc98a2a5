package create_event

import (
	"time"

	"github.com/google/uuid"
)

// Request запрос на создание события
type Request struct {
	BusinessID uuid.UUID
	StaffID    uuid.UUID
	// ProcedureID опциональна. Если задана, длительность и название
	// по умолчанию берутся из процедуры.
	ProcedureID *uuid.UUID
	Title       string
	ClientName  *string
	ClientPhone *string
	StartAt     time.Time
	// EndAt опционально при заданной ProcedureID: тогда окончание
	// вычисляется как StartAt + длительность процедуры.
	EndAt  time.Time
	Source string
	Notes  *string
}

// Response результат создания события
type Response struct {
	ID          uuid.UUID  `json:"id"`
	BusinessID  uuid.UUID  `json:"business_id"`
	StaffID     uuid.UUID  `json:"staff_id"`
	ProcedureID *uuid.UUID `json:"procedure_id,omitempty"`
	Title       string     `json:"title"`
	ClientName  *string    `json:"client_name,omitempty"`
	ClientPhone *string    `json:"client_phone,omitempty"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       time.Time  `json:"end_at"`
	Status      string     `json:"status"`
	Source      string     `json:"source"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
