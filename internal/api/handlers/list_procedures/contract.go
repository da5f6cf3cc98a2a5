package list_procedures

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/service/procedures/models"
)

type ProcedureService interface {
	List(ctx context.Context, businessID uuid.UUID) (*models.ProcedureListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
