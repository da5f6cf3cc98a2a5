package approve_request

import (
	"time"

	"github.com/google/uuid"
)

// Request запрос на одобрение заявки
type Request struct {
	BusinessID uuid.UUID
	RequestID  uuid.UUID
}

// Response результат одобрения заявки
type Response struct {
	RequestID uuid.UUID  `json:"request_id"`
	Status    string     `json:"status"`
	EventID   *uuid.UUID `json:"event_id,omitempty"`
	StaffID   *uuid.UUID `json:"staff_id,omitempty"`
	StartAt   *time.Time `json:"start_at,omitempty"`
	EndAt     *time.Time `json:"end_at,omitempty"`
}
