package get_events

import (
	"context"

	"github.com/taimeline/taimeline-service/internal/service/events/models"
)

type EventService interface {
	List(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
