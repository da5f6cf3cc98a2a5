package create_event

import (
	"context"

	createEvent "github.com/taimeline/taimeline-service/internal/usecase/create_event"
)

type CreateEventUseCase interface {
	Execute(ctx context.Context, req *createEvent.Request) (*createEvent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
