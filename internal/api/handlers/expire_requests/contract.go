package expire_requests

import (
	"context"

	expireRequests "github.com/taimeline/taimeline-service/internal/usecase/expire_requests"
)

type ExpireRequestsUseCase interface {
	Execute(ctx context.Context, req *expireRequests.Request) (*expireRequests.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
