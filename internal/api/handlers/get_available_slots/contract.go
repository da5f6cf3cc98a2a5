package get_available_slots

import (
	"context"

	findSlots "github.com/taimeline/taimeline-service/internal/usecase/find_available_slots"
)

type FindAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *findSlots.Request) (*findSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
