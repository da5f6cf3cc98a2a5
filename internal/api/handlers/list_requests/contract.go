package list_requests

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/service/requests/models"
)

type RequestService interface {
	ListOpen(ctx context.Context, businessID uuid.UUID) (*models.RequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
