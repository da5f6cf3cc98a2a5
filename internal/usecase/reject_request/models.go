package reject_request

import "github.com/google/uuid"

// Request запрос на отклонение заявки
type Request struct {
	BusinessID uuid.UUID
	RequestID  uuid.UUID
}

// Response результат отклонения заявки
type Response struct {
	RequestID uuid.UUID `json:"request_id"`
	Status    string    `json:"status"`
}
