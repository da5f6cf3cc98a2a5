package delete_event

import (
	"context"

	"github.com/google/uuid"
)

type EventService interface {
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
