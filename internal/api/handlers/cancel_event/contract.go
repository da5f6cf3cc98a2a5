package cancel_event

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/service/events/models"
)

type EventService interface {
	Cancel(ctx context.Context, businessID, id uuid.UUID) (*models.EventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
